package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagScene    = flag.String("scene", "", "Preset name or path to a YAML scene file")
	flagScenes   = flag.String("scenes", "", "Directory searched by -list")
	flagList     = flag.Bool("list", false, "List available scenes and exit")
	flagWidth    = flag.Int("width", 0, "Image width")
	flagHeight   = flag.Int("height", 0, "Image height")
	flagSPP      = flag.Int("spp", 0, "Samples per pixel")
	flagBounces  = flag.Int("bounces", -1, "Maximum path depth")
	flagSeed     = flag.Uint64("seed", 0, "Base random seed (0 keeps the scene's)")
	flagWorkers  = flag.Int("workers", 0, "Parallel workers (0 uses every CPU)")
	flagTileSize = flag.Int("tile", 0, "Tile edge in pixels")
	flagMode     = flag.String("mode", "", "Debug mode: normals, face, depth, uv, scatter, light")
	flagOut      = flag.String("out", "", "Output file path")
	flagFormat   = flag.String("format", "", "Output format: png, bmp or tiff")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile  = flag.String("log", "", "Rotating log file path")
	flagSave     = flag.String("save-config", "", "Write the effective config to this path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ListRequested reports whether -list was given.
func ListRequested() bool {
	return *flagList
}

// SavePath returns the -save-config target, empty when not requested.
func SavePath() string {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagScene != "" {
		cfg.Scene.Name = *flagScene
	}
	if *flagScenes != "" {
		cfg.Scene.Dir = *flagScenes
	}
	if *flagWidth > 0 {
		cfg.Scene.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Scene.Height = *flagHeight
	}
	if *flagWorkers > 0 {
		cfg.Scene.Workers = *flagWorkers
	}
	if *flagTileSize > 0 {
		cfg.Scene.TileSize = *flagTileSize
	}
	if *flagMode != "" {
		cfg.Scene.Mode = *flagMode
	}
	if *flagSPP > 0 {
		spp := *flagSPP
		cfg.Render.SamplesPerPixel = &spp
	}
	if *flagBounces >= 0 {
		bounces := *flagBounces
		cfg.Render.MaxBounces = &bounces
	}
	if *flagSeed != 0 {
		seed := *flagSeed
		cfg.Render.Seed = &seed
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
