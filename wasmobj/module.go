package wasmobj

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/kowtow/errors"
	"github.com/wippyai/kowtow/object"
)

// Config holds configuration for loading a module.
type Config struct {
	// Logger receives debug events. Nil means no logging.
	Logger *zap.Logger

	// Name is the module instance name. Empty means anonymous.
	Name string

	// MemoryLimitPages sets the maximum memory in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32
}

// Module is an instantiated core module and its exports object.
type Module struct {
	// ctx is the context calls through Exports run with.
	ctx      context.Context
	runtime  wazero.Runtime
	instance api.Module
	realm    *object.Realm
	exports  *object.Ordinary
	logger   *zap.Logger
}

// Load compiles and instantiates wasmBytes, building the exports object in
// realm. Calls made through the exports run with ctx.
func Load(ctx context.Context, realm *object.Realm, wasmBytes []byte, cfg *Config) (*Module, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Load("compile failed", err)
	}

	instance, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(cfg.Name))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Load("instantiate failed", err)
	}

	m := &Module{
		ctx:      ctx,
		runtime:  rt,
		instance: instance,
		realm:    realm,
		exports:  realm.NewObject(),
		logger:   l,
	}

	defs := instance.ExportedFunctionDefinitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fn := realm.NewMethod(name, m.wrap(name, defs[name]))
		if err := m.exports.DefineOwnProperty(name, object.FrozenProperty(fn)); err != nil {
			_ = rt.Close(ctx)
			return nil, err
		}
	}
	_, _ = m.exports.PreventExtensions()

	l.Debug("module loaded", zap.String("name", cfg.Name), zap.Int("exports", len(names)))
	return m, nil
}

// Exports returns the frozen exports object.
func (m *Module) Exports() *object.Ordinary {
	return m.exports
}

// Close releases the runtime and every instance in it.
func (m *Module) Close(ctx context.Context) error {
	return m.runtime.Close(ctx)
}

func (m *Module) wrap(name string, def api.FunctionDefinition) object.NativeFunc {
	params := def.ParamTypes()
	results := def.ResultTypes()
	return func(_ object.Value, args []object.Value) (object.Value, error) {
		if len(args) != len(params) {
			return nil, errors.TypeMismatch(errors.PhaseInvoke, []string{name}, "arguments",
				fmt.Sprintf("expected %d arguments, got %d", len(params), len(args)))
		}
		stack := make([]uint64, len(params))
		for i, vt := range params {
			enc, err := encode(vt, args[i])
			if err != nil {
				return nil, errors.TypeMismatch(errors.PhaseInvoke, []string{name, fmt.Sprintf("arg%d", i)},
					object.TypeName(args[i]), err.Error())
			}
			stack[i] = enc
		}

		fn := m.instance.ExportedFunction(name)
		if fn == nil {
			return nil, errors.NotFound(errors.PhaseInvoke, "function", name)
		}
		raw, err := fn.Call(m.ctx, stack...)
		if err != nil {
			m.logger.Debug("call trapped", zap.String("func", name), zap.Error(err))
			return nil, errors.Trap(name, err)
		}

		switch len(results) {
		case 0:
			return object.Undefined, nil
		case 1:
			return decode(results[0], raw[0]), nil
		}
		out := make([]object.Value, len(results))
		for i, vt := range results {
			out[i] = decode(vt, raw[i])
		}
		return m.realm.NewArray(out...), nil
	}
}

func encode(vt api.ValueType, v object.Value) (uint64, error) {
	f, ok := object.ToNumber(v)
	if !ok {
		return 0, fmt.Errorf("%s parameter needs a number", api.ValueTypeName(vt))
	}
	switch vt {
	case api.ValueTypeI32:
		if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxUint32 {
			return 0, fmt.Errorf("%v does not fit i32", v)
		}
		return api.EncodeI32(int32(int64(f))), nil
	case api.ValueTypeI64:
		if n, ok := v.(int64); ok {
			return api.EncodeI64(n), nil
		}
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%v does not fit i64", v)
		}
		return api.EncodeI64(int64(f)), nil
	case api.ValueTypeF32:
		return api.EncodeF32(float32(f)), nil
	case api.ValueTypeF64:
		return api.EncodeF64(f), nil
	default:
		return 0, fmt.Errorf("unsupported parameter type %s", api.ValueTypeName(vt))
	}
}

func decode(vt api.ValueType, raw uint64) object.Value {
	switch vt {
	case api.ValueTypeI32:
		return int(api.DecodeI32(raw))
	case api.ValueTypeI64:
		return int64(raw)
	case api.ValueTypeF32:
		return float64(api.DecodeF32(raw))
	case api.ValueTypeF64:
		return api.DecodeF64(raw)
	default:
		return raw
	}
}
