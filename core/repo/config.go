package repo

// Config holds configuration for the target repository.
type Config struct {
	// RootFolder is the name of the folder under which imports land.
	RootFolder string `mapstructure:"root_folder" default:"imported"`
	// ContentPrefix is the object key prefix in the content store.
	ContentPrefix string `mapstructure:"content_prefix" default:"content"`
}
