// Package config provides configuration parsing for vdomctl.
//
// The configuration is stored in vdomctl.json in the working directory.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "log": {
//	    "level": "info"
//	  },
//	  "render": {
//	    "pretty": true,
//	    "indent": "  "
//	  },
//	  "serve": {
//	    "addr": "localhost:3000",
//	    "interval": "1s"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vdom"
//	  },
//	  "snapshot": {
//	    "dir": ".snapshots",
//	    "s3": {
//	      "bucket": "my-bucket",
//	      "prefix": "snapshots/",
//	      "region": "eu-west-1"
//	    }
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Serve.Addr)
package config
