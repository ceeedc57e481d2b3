package state

// Config holds the locations of the persisted documents.
type Config struct {
	// Dir is the directory holding the state documents.
	Dir string `mapstructure:"dir" default:"."`
	// VersionFile is the name of the version document.
	VersionFile string `mapstructure:"version_file" default:"version.json"`
	// ChangedFile is the name of the changed-set document.
	ChangedFile string `mapstructure:"changed_file" default:"changed.json"`
}
