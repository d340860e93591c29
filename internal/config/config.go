// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// StoreDriver selects the match history backend: csv or postgres.
	StoreDriver string `koanf:"store_driver"`

	// DataFile is the CSV export read by the csv driver.
	DataFile string `koanf:"data_file"`

	// DatabaseURL is the connection string used by the postgres driver.
	DatabaseURL string `koanf:"database_url"`

	// StoreMigrate applies pending schema migrations on start.
	StoreMigrate bool `koanf:"store_migrate"`

	// ArtifactsDir holds the trained preprocessor and model files.
	ArtifactsDir     string `koanf:"artifacts_dir"`
	PreprocessorFile string `koanf:"preprocessor_file"`
	ModelFile        string `koanf:"model_file"`

	// LineupSize is the number of players returned per request.
	LineupSize int `koanf:"lineup_size"`

	// GeneralFormWindow and HeadToHeadWindow bound how many of a player's most
	// recent matches feed the averages.
	GeneralFormWindow int `koanf:"general_form_window"`
	HeadToHeadWindow  int `koanf:"head_to_head_window"`

	// MissingPlayerPolicy is exclude or zero.
	MissingPlayerPolicy string `koanf:"missing_player_policy"`

	// Rosters maps a team code to its squad. Entries from a config file are
	// merged over the defaults.
	Rosters map[string][]string `koanf:"rosters"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":5000",
		StoreDriver:         "csv",
		DataFile:            "data/ipl_data.csv",
		ArtifactsDir:        "artifacts",
		PreprocessorFile:    "preprocessor.json",
		ModelFile:           "model.json",
		LineupSize:          11,
		GeneralFormWindow:   3,
		HeadToHeadWindow:    2,
		MissingPlayerPolicy: "exclude",
		Rosters:             DefaultRosters(),
	}
}

// DefaultRosters returns a fresh copy of the built-in IPL squads.
func DefaultRosters() map[string][]string {
	out := make(map[string][]string, len(defaultRosters))
	for code, players := range defaultRosters {
		out[code] = append([]string(nil), players...)
	}
	return out
}

var defaultRosters = map[string][]string{
	"MI": {
		"Rohit Sharma", "Suryakumar Yadav", "Ishan Kishan", "Hardik Pandya", "Krunal Pandya",
		"Kieron Pollard", "Trent Boult", "Jasprit Bumrah", "Rahul Chahar", "Quinton de Kock",
		"Nathan Coulter-Nile",
	},
	"CSK": {
		"MS Dhoni", "Suresh Raina", "Ravindra Jadeja", "Faf du Plessis", "Deepak Chahar",
		"Dwayne Bravo", "Sam Curran", "Ruturaj Gaikwad", "Ambati Rayudu", "Shardul Thakur",
		"Imran Tahir",
	},
	"RCB": {
		"Virat Kohli", "AB de Villiers", "Glenn Maxwell", "Yuzvendra Chahal", "Harshal Patel",
		"Devdutt Padikkal", "Mohammed Siraj", "Washington Sundar", "Navdeep Saini", "Kyle Jamieson",
		"Dan Christian",
	},
	"KKR": {
		"Eoin Morgan", "Andre Russell", "Dinesh Karthik", "Pat Cummins", "Shubman Gill",
		"Varun Chakravarthy", "Lockie Ferguson", "Nitish Rana", "Sunil Narine", "Kuldeep Yadav",
		"Shivam Mavi",
	},
	"SRH": {
		"David Warner", "Kane Williamson", "Rashid Khan", "Bhuvneshwar Kumar", "Manish Pandey",
		"Jonny Bairstow", "Jason Holder", "T Natarajan", "Vijay Shankar", "Sandeep Sharma",
		"Wriddhiman Saha",
	},
	"DC": {
		"Rishabh Pant", "Shikhar Dhawan", "Prithvi Shaw", "Kagiso Rabada", "Marcus Stoinis",
		"Anrich Nortje", "Shimron Hetmyer", "Ravichandran Ashwin", "Avesh Khan", "Ajinkya Rahane",
		"Chris Woakes",
	},
	"PBKS": {
		"KL Rahul", "Chris Gayle", "Mayank Agarwal", "Mohammed Shami", "Nicholas Pooran",
		"Ravi Bishnoi", "Jhye Richardson", "Shahrukh Khan", "Deepak Hooda", "Arshdeep Singh",
		"Mandeep Singh",
	},
	"RR": {
		"Sanju Samson", "Jos Buttler", "Ben Stokes", "Jofra Archer", "Chris Morris",
		"Rahul Tewatia", "Riyan Parag", "Shreyas Gopal", "Mustafizur Rahman", "Yashasvi Jaiswal",
		"David Miller",
	},
	"GT": {
		"Shubman Gill", "Rashid Khan", "David Miller", "Hardik Pandya", "Rahul Tewatia",
		"Matthew Wade", "Lockie Ferguson", "Mohammed Shami", "Alzarri Joseph", "Yash Dayal",
		"Vijay Shankar",
	},
	"LSG": {
		"KL Rahul", "Quinton de Kock", "Deepak Hooda", "Marcus Stoinis", "Jason Holder",
		"Krunal Pandya", "Mark Wood", "Avesh Khan", "Ravi Bishnoi", "Manish Pandey",
		"Dushmantha Chameera",
	},
}
