// Package connectors holds the Connector implementations that enumerate
// corpus documents. Quarry reads local directories through the filesystem
// connector; each run creates one through its ConnectorFactory.
package connectors
