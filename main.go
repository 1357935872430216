package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/df07/go-nerf-dataset/pkg/config"
	"github.com/df07/go-nerf-dataset/pkg/dataset"
	"github.com/df07/go-nerf-dataset/pkg/fileio"
	"github.com/df07/go-nerf-dataset/pkg/log"
	"github.com/df07/go-nerf-dataset/pkg/notify"
	"github.com/df07/go-nerf-dataset/pkg/renderer"
	"github.com/df07/go-nerf-dataset/pkg/scene"
)

// SceneFileName is the scene description written next to the manifests
const SceneFileName = "scene.json"

// brokerTimeout bounds how long the notifier waits for the broker to accept a connection
const brokerTimeout = 15 * time.Second

type renderFlags struct {
	configPath string
	envFile    string
	output     string
	scene      string
	seed       int64
	keepAlpha  bool
	samples    int
	width      int
	height     int
	debug      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(&renderFlags{}).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(flags *renderFlags) *cobra.Command {

	renderE := func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, flags)
		if err != nil {
			return err
		}
		return runRender(cmd.Context(), cfg)
	}

	root := &cobra.Command{
		Use:          "nerfgen",
		Short:        "Render NeRF training datasets",
		Long:         "Render a scene from randomly sampled camera poses and write images plus transforms_{split}.json manifests.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         renderE,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "TOML configuration file")
	pf.StringVar(&flags.envFile, "env-file", "", "Environment file with NERFGEN_* overrides (default .env if present)")
	pf.StringVarP(&flags.output, "output", "o", "", "Output directory")
	pf.StringVarP(&flags.scene, "scene", "s", "", "Scene to render (see 'nerfgen scenes')")
	pf.Int64Var(&flags.seed, "seed", 0, "Random seed for scene and camera poses (0 picks one)")
	pf.BoolVar(&flags.keepAlpha, "keep-alpha", false, "Write RGBA images instead of compositing onto the background")
	pf.IntVar(&flags.samples, "samples", 0, "Maximum samples per pixel")
	pf.IntVar(&flags.width, "width", 0, "Image width in pixels")
	pf.IntVar(&flags.height, "height", 0, "Image height in pixels")
	pf.BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "render",
		Short: "Render every configured split (default)",
		Args:  cobra.NoArgs,
		RunE:  renderE,
	})
	root.AddCommand(&cobra.Command{
		Use:   "scenes",
		Short: "List available scenes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, info := range scene.ListScenes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", info.ID, info.Description)
			}
		},
	})

	return root
}

// loadConfig layers defaults, the config file, environment and command line flags
func loadConfig(cmd *cobra.Command, flags *renderFlags) (config.Config, error) {
	if err := config.LoadEnv(flags.envFile); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(nil); err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.Output.Dir = flags.output
	}
	if changed("scene") {
		cfg.Scene.Name = flags.scene
	}
	if changed("seed") {
		cfg.Render.Seed = flags.seed
	}
	if changed("keep-alpha") {
		cfg.Output.KeepAlpha = flags.keepAlpha
	}
	if changed("samples") {
		cfg.Render.SamplesPerPixel = flags.samples
	}
	if changed("width") {
		cfg.Render.Width = flags.width
	}
	if changed("height") {
		cfg.Render.Height = flags.height
	}
	if changed("debug") {
		cfg.Log.Debug = flags.debug
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runRender(ctx context.Context, cfg config.Config) error {
	logger, err := log.NewLogger(cfg.Log.Development, cfg.Log.Debug, cfg.Log.OutputPaths...)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	summary, err := generate(ctx, &cfg, logger)
	if err != nil {
		logger.Errorw("dataset generation failed", "error", err)
		return err
	}

	if err := publish(ctx, cfg, summary, logger); err != nil {
		logger.Errorw("dataset-ready notification failed", "error", err)
		return err
	}
	return nil
}

// generate builds the scene and renders every split.
// A zero seed is resolved in cfg so later steps report the seed actually used.
func generate(ctx context.Context, cfg *config.Config, logger *log.Logger) (*dataset.RunSummary, error) {
	seed := cfg.ResolveSeed()
	logger.Infow("seed", "seed", seed, "scene", cfg.Scene.Name)

	sc, err := createScene(*cfg)
	if err != nil {
		return nil, err
	}

	scenePath := filepath.Join(cfg.Output.Dir, SceneFileName)
	if err := fileio.WriteJSON(scenePath, sc.Info); err != nil {
		return nil, fmt.Errorf("write scene description: %w", err)
	}

	r := renderer.NewRenderer(sc, cfg.RendererConfig(), logger)
	driver, err := dataset.NewDriver(sc.Camera, r, cfg.DatasetConfig(), logger)
	if err != nil {
		return nil, err
	}

	return driver.Run(ctx, cfg.DatasetSplits())
}

func createScene(cfg config.Config) (*scene.Scene, error) {
	return scene.CreateScene(cfg.Scene.Name, cfg.SceneOptions())
}

// newPublisher connects to the configured broker, or discards messages when none is set
var newPublisher = func(cfg config.Config, logger *log.Logger) (notify.Publisher, error) {
	if cfg.Notify.AMQPURL == "" {
		return notify.Nop{}, nil
	}
	return notify.DialAMQP(cfg.Notify.AMQPURL, cfg.Notify.Queue, brokerTimeout, logger)
}

// publish announces the finished dataset
func publish(ctx context.Context, cfg config.Config, summary *dataset.RunSummary, logger *log.Logger) error {
	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	return publisher.PublishDatasetReady(ctx, notify.NewDatasetReady(summary, cfg.Scene.Name, cfg.Render.Seed))
}
