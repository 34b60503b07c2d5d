package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/oomph-ac/locomotion/camera"
	"github.com/oomph-ac/locomotion/controller"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/world"
	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

// Settings contains everything that can be configured for a simulation.
type Settings struct {
	Log        LogSettings       `toml:"log"`
	Loop       LoopSettings      `toml:"loop"`
	Layers     LayerSettings     `toml:"layers"`
	Controller controller.Config `toml:"controller"`
	Camera     camera.Config     `toml:"camera"`
	Lens       camera.Lens       `toml:"lens"`
}

// LogSettings configure the logger of the host.
type LogSettings struct {
	// Level is a logrus level name, such as "info" or "debug".
	Level string `toml:"level"`
}

// LoopSettings configure the simulation loop.
type LoopSettings struct {
	// FixedStep is the physics timestep in seconds.
	FixedStep float32 `toml:"fixed_step"`
	// MaxStepsPerFrame bounds the physics steps run for a single frame, so that a long frame does not
	// stall the loop catching up.
	MaxStepsPerFrame int `toml:"max_steps_per_frame"`
	// HistorySize is the amount of physics steps kept for diagnostics.
	HistorySize int `toml:"history_size"`
}

// LayerSettings name the collision layers of the world and select the layers the controller's ground
// probe and the camera's obstruction cast hit.
type LayerSettings struct {
	Names       []string `toml:"names"`
	Probe       []string `toml:"probe"`
	Obstruction []string `toml:"obstruction"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	// Masks are not stored in the file, Resolve builds them from the layer names.
	ctrl, cam := controller.DefaultConfig(), camera.DefaultConfig()
	ctrl.ProbeMask, cam.ObstructionMask = world.NoLayers, world.NoLayers

	return Settings{
		Log: LogSettings{Level: logrus.InfoLevel.String()},
		Loop: LoopSettings{
			FixedStep:        0.02,
			MaxStepsPerFrame: 8,
			HistorySize:      256,
		},
		Layers: LayerSettings{
			Names:       []string{world.LayerDefault, world.LayerGround, world.LayerObstacle},
			Probe:       []string{world.LayerDefault, world.LayerGround},
			Obstruction: []string{world.LayerDefault, world.LayerObstacle},
		},
		Controller: ctrl,
		Camera:     cam,
		Lens:       camera.DefaultLens(),
	}
}

// Resolved holds the settings in the form the simulation consumes them.
type Resolved struct {
	Level      logrus.Level
	Loop       LoopSettings
	Layers     *world.Layers
	Controller controller.Config
	Camera     camera.Config
	Lens       camera.Lens
}

// Resolve validates the settings and resolves the layer names into a registry and masks.
func (s Settings) Resolve() (Resolved, error) {
	level, err := logrus.ParseLevel(s.Log.Level)
	if err != nil {
		return Resolved{}, fmt.Errorf("log level: %w", err)
	}
	if s.Loop.FixedStep <= 0 {
		return Resolved{}, oerror.New("loop: fixed step must be positive, got %v", s.Loop.FixedStep)
	}
	if s.Loop.MaxStepsPerFrame < 1 {
		return Resolved{}, oerror.New("loop: max steps per frame must be at least 1, got %d", s.Loop.MaxStepsPerFrame)
	}
	if s.Loop.HistorySize < 0 {
		return Resolved{}, oerror.New("loop: history size must not be negative, got %d", s.Loop.HistorySize)
	}

	layers := world.NewLayers()
	for _, name := range s.Layers.Names {
		if _, err := layers.Register(name); err != nil {
			return Resolved{}, err
		}
	}
	probe, err := layers.Mask(s.Layers.Probe...)
	if err != nil {
		return Resolved{}, fmt.Errorf("probe layers: %w", err)
	}
	obstruction, err := layers.Mask(s.Layers.Obstruction...)
	if err != nil {
		return Resolved{}, fmt.Errorf("obstruction layers: %w", err)
	}

	r := Resolved{
		Level:      level,
		Loop:       s.Loop,
		Layers:     layers,
		Controller: s.Controller.Validate(),
		Camera:     s.Camera.Validate(),
		Lens:       s.Lens.Validate(),
	}
	r.Controller.ProbeMask = probe
	r.Camera.ObstructionMask = obstruction
	return r, nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return oerror.New("settings file %s already exists", path)
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from the settings file at path. If the file does not exist, it is created
// with the default settings, which are returned.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := SaveDefault(path); err != nil {
			return Settings{}, err
		}
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %w", err)
	}
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	return s, nil
}
