// Command conduitctl loads a stage configuration and a pipeline
// recipe, composes and builds a pipeline, and serves the admin HTTP
// surface in front of it — the wiring shape of the teacher's
// cmd/edgectl/main.go and cmd/miragectl, adapted from an HTTP-proxy
// service to a protocol pipeline host.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/conduit/internal/admin"
	"github.com/danmuck/conduit/internal/config"
	"github.com/danmuck/conduit/internal/observability"
	"github.com/danmuck/conduit/internal/pipeline"
	"github.com/danmuck/conduit/internal/stages/cipher"
	"github.com/danmuck/conduit/internal/stages/fields"
	"github.com/danmuck/conduit/internal/stages/framer"
	"github.com/danmuck/conduit/internal/stages/handshake"
	"github.com/danmuck/conduit/internal/stages/tick"
)

// stageNameFields and stageNameTick are the two recipe entries that
// transition the pipeline's type shape (FieldSet <-> []byte) rather
// than staying inside the []byte wire segment; every other recognized
// name resolves through byteStageFactories below.
const (
	stageNameFields = "fields"
	stageNameTick   = "tick"
)

func main() {
	stageConfigPath := flag.String("stage-config", "stage.toml", "path to stage parameter TOML")
	recipePath := flag.String("recipe", "recipe.toml", "path to pipeline recipe TOML")
	flag.Parse()

	logger := observability.InitLogger("conduitctl")

	if err := run(*stageConfigPath, *recipePath, logger); err != nil {
		logger.Error().Err(err).Msg("conduitctl exiting")
		os.Exit(1)
	}
}

func run(stageConfigPath, recipePath string, logger zerolog.Logger) error {
	stageCfg, err := config.LoadStageConfig(stageConfigPath)
	if err != nil {
		return fmt.Errorf("load stage config: %w", err)
	}
	recipe, err := config.LoadRecipe(recipePath)
	if err != nil {
		return fmt.Errorf("load recipe: %w", err)
	}

	key, err := hex.DecodeString(stageCfg.CipherKeyHex)
	if err != nil {
		return fmt.Errorf("decode cipher key: %w", err)
	}

	tickInterval, err := stageCfg.TickIntervalDuration()
	if err != nil {
		return fmt.Errorf("parse tick interval: %w", err)
	}

	ctx := pipeline.NewContext(tick.RealScheduler{})

	rootStage, err := buildPipeline(recipe.Stages, stageCfg, key, tickInterval)
	if err != nil {
		return fmt.Errorf("build pipeline from recipe: %w", err)
	}

	cmdSink := loggingCommandSink{logger: logger}
	evtSink := loggingEventSink{logger: logger}
	injector := pipeline.Build[fields.FieldSet, []byte, fields.FieldSet, []byte](rootStage, ctx, cmdSink, evtSink)
	injector.Metrics = observability.Recorder{PipelineName: "conduit"}
	ctx.Redeliver = injector.Management

	logger.Info().Strs("stages", recipe.Stages).Str("admin_addr", recipe.AdminListenAddr).Msg("pipeline built")

	server := admin.New(injector, logger, []string{"*"})
	return server.Run(recipe.AdminListenAddr)
}

// buildPipeline folds recipe.Stages, in order, into one runnable
// pipeline: "fields" and "tick" transition the type shape between
// fields.FieldSet and []byte and are handled specially (tick always
// wraps the outermost FieldSet layer; fields always bridges down to
// the wire), while every other recognized name resolves through
// byteStageFactories and is vertically folded into the []byte segment
// in the order it appears, pipeline.Identity[[]byte]() seeding the
// fold the way 0 seeds a sum.
func buildPipeline(
	stageNames []string,
	stageCfg config.StageConfig,
	cipherKey []byte,
	tickInterval time.Duration,
) (pipeline.Stage[fields.FieldSet, []byte, fields.FieldSet, []byte], error) {
	byteStageFactories := map[string]func() pipeline.Stage[[]byte, []byte, []byte, []byte]{
		"cipher":    func() pipeline.Stage[[]byte, []byte, []byte, []byte] { return cipher.New(cipherKey) },
		"framer":    func() pipeline.Stage[[]byte, []byte, []byte, []byte] { return framer.New(stageCfg.FramerMaxLen) },
		"handshake": func() pipeline.Stage[[]byte, []byte, []byte, []byte] { return handshake.New(stageCfg.HandshakeRequired...) },
	}

	hasFields := false
	wantTick := false
	byteStage := pipeline.Identity[[]byte]()
	for _, name := range stageNames {
		switch name {
		case stageNameFields:
			hasFields = true
		case stageNameTick:
			wantTick = true
		default:
			factory, ok := byteStageFactories[name]
			if !ok {
				return nil, fmt.Errorf("unknown stage %q", name)
			}
			byteStage = pipeline.Vertical[[]byte, []byte, []byte, []byte, []byte, []byte](byteStage, factory())
		}
	}
	if !hasFields {
		return nil, fmt.Errorf("recipe must include the %q stage to bridge field sets to the wire", stageNameFields)
	}

	dataStage := pipeline.Vertical[fields.FieldSet, []byte, []byte, fields.FieldSet, []byte, []byte](
		fields.New(), byteStage,
	)

	var rootStage pipeline.Stage[fields.FieldSet, []byte, fields.FieldSet, []byte] = dataStage
	if wantTick {
		rootStage = pipeline.Vertical[fields.FieldSet, fields.FieldSet, []byte, fields.FieldSet, fields.FieldSet, []byte](
			tick.New[fields.FieldSet](stageCfg.TickID, tickInterval), dataStage,
		)
	}
	return rootStage, nil
}

type loggingCommandSink struct {
	logger zerolog.Logger
}

func (s loggingCommandSink) OnCommand(cmd []byte) {
	s.logger.Debug().Int("bytes", len(cmd)).Msg("command exited pipeline")
}

func (s loggingCommandSink) OnCommandFailure(err error) {
	s.logger.Error().Err(err).Msg("command injection failed")
}

type loggingEventSink struct {
	logger zerolog.Logger
}

func (s loggingEventSink) OnEvent(evt fields.FieldSet) {
	s.logger.Debug().Int("fields", len(evt)).Msg("event exited pipeline")
}

func (s loggingEventSink) OnEventFailure(err error) {
	s.logger.Error().Err(err).Msg("event injection failed")
}
