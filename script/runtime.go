package script

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"golang.org/x/image/math/f64"
)

var ErrNilRuntime = errors.New("script: nil runtime")

// Target is the part of a scene a script may move.
type Target interface {
	Rotation() f64.Vec3
	SetRotation(r f64.Vec3)
}

// Scripts define update(scene, state, dt). state persists between frames and
// across reloads; dt is in seconds.
const dispatchScript = `
update(__scene, __state, __dt)
`

// Runtime runs one compiled animation script against a target.
type Runtime struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	target   Target
	api      *tengo.ImmutableMap
}

// LoadRuntime loads and compiles a script by name.
func LoadRuntime(name string, target Target) (*Runtime, error) {
	src, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src, target)
}

func Compile(name string, src []byte, target Target) (*Runtime, error) {
	rt := &Runtime{
		name:   name,
		state:  &tengo.Map{Value: map[string]tengo.Object{}},
		target: target,
	}
	rt.api = rt.buildAPI()
	if err := rt.compile(src); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) compile(src []byte) error {
	full := string(src) + "\n" + dispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__scene", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__dt", 0.0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", rt.name, err)
	}
	rt.compiled = compiled
	return nil
}

// Reload swaps in new source. State collected so far is kept; on a compile
// error the previous program keeps running.
func (rt *Runtime) Reload(src []byte) error {
	if rt == nil {
		return ErrNilRuntime
	}
	return rt.compile(src)
}

func (rt *Runtime) Name() string {
	return rt.name
}

// Animate runs update once with dt.
func (rt *Runtime) Animate(dt time.Duration) error {
	if rt == nil || rt.compiled == nil {
		return ErrNilRuntime
	}
	if err := rt.compiled.Set("__scene", rt.api); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__dt", dt.Seconds()); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s: %w", rt.name, err)
	}
	return nil
}

// State returns a copy of a script state value.
func (rt *Runtime) State(key string) any {
	if rt == nil {
		return nil
	}
	obj, ok := rt.state.Value[key]
	if !ok {
		return nil
	}
	return tengo.ToInterface(obj)
}

func (rt *Runtime) buildAPI() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["rotation"] = &tengo.UserFunction{Name: "rotation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r := rt.rotation()
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: r[0]},
			&tengo.Float{Value: r[1]},
			&tengo.Float{Value: r[2]},
		}}, nil
	}}

	values["set_rotation"] = &tengo.UserFunction{Name: "set_rotation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.target == nil || len(args) < 3 {
			return tengo.FalseValue, nil
		}
		rt.target.SetRotation(f64.Vec3{objectAsFloat(args[0]), objectAsFloat(args[1]), objectAsFloat(args[2])})
		return tengo.TrueValue, nil
	}}

	values["rotate"] = &tengo.UserFunction{Name: "rotate", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.target == nil || len(args) < 3 {
			return tengo.FalseValue, nil
		}
		r := rt.target.Rotation()
		rt.target.SetRotation(f64.Vec3{
			r[0] + objectAsFloat(args[0]),
			r[1] + objectAsFloat(args[1]),
			r[2] + objectAsFloat(args[2]),
		})
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		fmt.Printf("script %s: %s\n", rt.name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (rt *Runtime) rotation() f64.Vec3 {
	if rt.target == nil {
		return f64.Vec3{}
	}
	return rt.target.Rotation()
}

func objectAsFloat(obj tengo.Object) float64 {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	}
	return 0
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
