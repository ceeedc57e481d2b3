package convert

// Config holds the external conversion commands.
type Config struct {
	// Coneshell is the decryptor command line. {in} and {out} are substituted.
	Coneshell string `mapstructure:"coneshell" default:"vendor/coneshell/Coneshell_call.exe -cdb {in} {out}"`
	// Unity is the Unity bundle deserializer command line. Empty copies the bundle as is.
	Unity string `mapstructure:"unity" default:"python3 src/deserialize.py {in} {out}"`
	// Verify opens the converted file as SQLite and requires at least one table.
	Verify bool `mapstructure:"verify" default:"true"`
}
