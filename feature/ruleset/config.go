package ruleset

// Config holds configuration for combining rulesets.
type Config struct {
	// InputDir holds one directory per source set, each with a jsons/ folder.
	InputDir string `mapstructure:"input_dir" default:"Input"`
	// OutputDir receives the combined ruleset.
	OutputDir string `mapstructure:"output_dir" default:"Combined"`
	// TechSet is the source set whose tech tree orders the required-tech fields.
	TechSet string `mapstructure:"tech_set" default:"Civ V - Gods & Kings"`
	// TechFile is the tech tree file inside TechSet.
	TechFile string `mapstructure:"tech_file" default:"Techs.json"`
	// KnownUniques lists every ability the target game understands, one per line.
	KnownUniques string `mapstructure:"known_uniques" default:"uniques/uniques.txt"`
	// UnwantedUniques lists abilities that replace rather than accumulate.
	UnwantedUniques string `mapstructure:"unwanted_uniques" default:"uniques/unwanted.txt"`
	// Resolver decides unknown abilities: prompt, reject, accept or lookup.
	Resolver string `mapstructure:"resolver" default:"prompt"`
	// DecisionsFile stores answers for unknown abilities (YAML keep/drop lists).
	DecisionsFile string `mapstructure:"decisions_file" default:""`
	// Nation is the name of the combined nation and the owner of every consolidated entity.
	Nation string `mapstructure:"nation" default:"Upside-Down"`
	// NationTemplate optionally replaces the built-in nation template (YAML or JSON).
	NationTemplate string `mapstructure:"nation_template" default:""`
	// IncludeSources copies every source set's entries next to the consolidated ones.
	IncludeSources bool `mapstructure:"include_sources" default:"true"`
	// BucketPrefix is the object key prefix used when publishing.
	BucketPrefix string `mapstructure:"bucket_prefix" default:"Combined"`
}

// Resolver modes.
const (
	ResolverPrompt = "prompt"
	ResolverReject = "reject"
	ResolverAccept = "accept"
	ResolverLookup = "lookup"
)
