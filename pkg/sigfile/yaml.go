package sigfile

// yamlSignature is the on-disk form of one catalog entry.
type yamlSignature struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Pattern     string   `yaml:"pattern"`
	Description string   `yaml:"description,omitempty"`
	References  []string `yaml:"references,omitempty"`
}

// yamlFile is the top-level structure of a catalog file: a "signatures"
// array.
type yamlFile struct {
	Signatures []yamlSignature `yaml:"signatures"`
}
