// Package config loads featurepack's own settings and reads exported site
// configuration from disk.
//
// # Settings
//
// Settings live in a YAML file (featurepack.yaml by default) that declares the
// bundles available for assignment, the core compatibility constraint written
// into generated packages and any extra configuration entity types:
//
//	core: "^10 || ^11"
//	defaultBundle: example
//	bundles:
//	  - machineName: example
//	    name: Example
//	    assignments:
//	      exclude:
//	        enabled: true
//	        weight: -5
//	        regex: '^system\.'
//
// A bundle only needs to list the assignment methods it changes; the others
// keep their defaults. A missing settings file yields DefaultSettings.
//
// # Process options
//
// Options come from FEATUREPACK_* environment variables. LoadOptions also
// reads a .env file from the working directory when one exists.
//
// # Active configuration
//
// FileStore reads a configuration export directory holding one <name>.yml
// file per configuration object. It implements features.ConfigStore and
// features.BatchReader; batch reads run concurrently and files that fail to
// parse are collected in a ConfigurationErrorCollection instead of aborting
// the load.
package config
