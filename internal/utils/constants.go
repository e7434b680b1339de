package utils

// GlobalConfigDirectoryName is the directory under the user home holding the global configuration file.
const GlobalConfigDirectoryName = ".semnav"

// ConfigFileName is the name of both the global and the local configuration file.
const ConfigFileName = ".semnav.yaml"
