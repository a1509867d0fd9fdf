package config

// Settings is the content of taker.yaml at the repository root.
type Settings struct {
	Make      MakeSettings        `yaml:"make"`
	Languages map[string]Language `yaml:"languages"`
	Sources   SourceSettings      `yaml:"sources"`

	// Path is the root-relative file the settings were read from. It is empty
	// when the built-in defaults are used.
	Path string `yaml:"-"`
	// LanguagesDeclared reports whether the file has a non-empty languages
	// section.
	LanguagesDeclared bool `yaml:"-"`
}

// MakeSettings configures the build driver.
type MakeSettings struct {
	// Jobs is the default number of parallel jobs. Zero selects the number of CPUs.
	Jobs int `yaml:"jobs"`
	// Program is the make-compatible driver, looked up on the search path.
	Program string `yaml:"program"`
}

// Language describes how sources of one language become executables.
type Language struct {
	// Ext is the source file extension, including the dot.
	Ext string `yaml:"ext"`
	// ExeExt is appended to the executable name.
	ExeExt string `yaml:"exe-ext"`
	// Compile is the compiler command line. "{src}" and "{exe}" stand for the
	// source and the executable. An empty command copies the source.
	Compile []string `yaml:"compile"`
}

// SourceSettings lists the source directories.
type SourceSettings struct {
	Dirs []string `yaml:"dirs"`
}

const (
	// DefaultProgram is the build driver used when none is configured.
	DefaultProgram = "make"
	// MaxJobs is the largest accepted job count.
	MaxJobs = 512
)

// LanguagesSection is the settings section that source rules depend on.
const LanguagesSection = "languages"

// DefaultLanguages returns the languages known without any settings.
func DefaultLanguages() map[string]Language {
	return map[string]Language{
		"cpp": {Ext: ".cpp", Compile: []string{"g++", "-O2", "-std=c++17", "{src}", "-o", "{exe}"}},
		"c":   {Ext: ".c", Compile: []string{"gcc", "-O2", "{src}", "-o", "{exe}"}},
		"py":  {Ext: ".py"},
	}
}

// DefaultSettings returns the settings used when taker.yaml is absent.
func DefaultSettings() *Settings {
	return &Settings{
		Make:      MakeSettings{Program: DefaultProgram},
		Languages: DefaultLanguages(),
	}
}
