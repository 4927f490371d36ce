// Package luadetect provides a fold level detector whose policy is written
// in Lua. It exists for host environments that want syntax-aware or
// project-specific folding rules without recompiling the editor.
//
// A script must define a global function:
//
//	function detect(prev_text, cur_text, tab_width)
//	    return level
//	end
//
// prev_text is the text of the nearest preceding non-blank line, or nil for
// the first line. The function must be deterministic and return a number;
// anything else falls back to the configured fallback detector.
//
// gopher-lua's LState is not goroutine-safe. A Detector owns one state and
// must only be used from the goroutine that runs the fold pass, which is
// the engine's single-writer thread anyway.
package luadetect

import (
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/SirmoGames/pyqode.core/internal/folding"
	"github.com/SirmoGames/pyqode.core/internal/linestore"
	"github.com/SirmoGames/pyqode.core/internal/logging"
)

// Errors for Lua detector operations.
var (
	// ErrNoDetectFunction is returned when the script does not define a
	// global detect function.
	ErrNoDetectFunction = errors.New("lua script does not define a detect function")

	// ErrDetectorClosed is returned when loading on a closed detector.
	ErrDetectorClosed = errors.New("lua detector is closed")
)

// Detector runs a user-supplied Lua function to compute fold levels.
// It implements folding.Detector.
type Detector struct {
	state    *lua.LState
	fn       lua.LValue
	tabWidth int
	fallback folding.Detector
	logger   *logging.Logger
	closed   bool
}

// Option configures a Detector.
type Option func(*Detector)

// WithTabWidth sets the tab width passed to the Lua function. Defaults to
// linestore.DefaultTabWidth.
func WithTabWidth(width int) Option {
	return func(d *Detector) {
		if width > 0 {
			d.tabWidth = width
		}
	}
}

// WithFallback sets the detector consulted when the script errors or
// returns a non-number. Defaults to IndentDetector at the same tab width.
func WithFallback(det folding.Detector) Option {
	return func(d *Detector) {
		if det != nil {
			d.fallback = det
		}
	}
}

// WithLogger sets the logger for script failure reports. Defaults to
// logging.Nop.
func WithLogger(logger *logging.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a detector from Lua source.
func New(script string, opts ...Option) (*Detector, error) {
	d := &Detector{
		state:    lua.NewState(),
		tabWidth: linestore.DefaultTabWidth,
		logger:   logging.Nop,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.fallback == nil {
		d.fallback = folding.IndentDetector{TabWidth: d.tabWidth}
	}

	if err := d.state.DoString(script); err != nil {
		d.state.Close()
		return nil, fmt.Errorf("loading lua detector: %w", err)
	}

	fn := d.state.GetGlobal("detect")
	if fn == lua.LNil {
		d.state.Close()
		return nil, ErrNoDetectFunction
	}
	d.fn = fn

	return d, nil
}

// FromFile creates a detector from a Lua script file.
func FromFile(path string, opts ...Option) (*Detector, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lua detector %s: %w", path, err)
	}
	return New(string(src), opts...)
}

// Close releases the Lua state. The detector must not be used afterwards.
func (d *Detector) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.state.Close()
}

// DetectFoldLevel implements folding.Detector. Script errors, panics and
// non-number results are logged at debug level and answered by the
// fallback detector instead; a bad script degrades folding, it never
// breaks the pass.
func (d *Detector) DetectFoldLevel(prev, cur linestore.Handle) int {
	level, err := d.call(prev, cur)
	if err != nil {
		d.logger.Debug("lua detector failed on line %d: %v", cur.Number()+1, err)
		return d.fallback.DetectFoldLevel(prev, cur)
	}
	return level
}

// call invokes the Lua detect function with panic recovery.
func (d *Detector) call(prev, cur linestore.Handle) (level int, err error) {
	if d.closed {
		return 0, ErrDetectorClosed
	}

	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			case string:
				err = errors.New(v)
			default:
				err = errors.New("lua panic")
			}
		}
	}()

	prevText := lua.LNil
	if prev.Valid() {
		prevText = lua.LString(prev.Text())
	}

	L := d.state
	if err := L.CallByParam(lua.P{
		Fn:      d.fn,
		NRet:    1,
		Protect: true,
	}, prevText, lua.LString(cur.Text()), lua.LNumber(d.tabWidth)); err != nil {
		return 0, err
	}

	ret := L.Get(-1)
	L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("detect returned %s, want number", ret.Type())
	}
	return int(n), nil
}
