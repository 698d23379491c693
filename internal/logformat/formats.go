// Package logformat compiles declarative <Field>-annotated log format
// templates into line-matching grammars, applies domain-specific censor
// patterns, and tokenizes the resulting Content field.
package logformat

import (
	"github.com/standardbeagle/logram/internal/types"
)

// LogFormat pairs a format template with the ordered censor patterns that
// precede tokenization for that dialect.
type LogFormat struct {
	Name           types.LogFormatName
	Template       string
	CensorPatterns []string
	IsBuiltin      bool
}

// builtins is the closed set named in the external interface contract:
// Linux, OpenStack, Spark, HDFS, HPC, Proxifier, Android, HealthApp. Each
// template and censor list is reproduced verbatim from the reference
// parser this core was distilled from.
var builtins = []LogFormat{
	{
		Name:     types.FormatLinux,
		Template: `<Month> <Date> <Time> <Level> <Component>(\[<PID>\])?: <Content>`,
		CensorPatterns: []string{
			`(\d+\.){3}\d+`,
			`\w{3} \w{3} \d{2} \d{2}:\d{2}:\d{2} \d{4}`,
			`\d{2}:\d{2}:\d{2}`,
		},
		IsBuiltin: true,
	},
	{
		Name:     types.FormatOpenStack,
		Template: `<Logrecord> <Date> <Time> <Pid> <Level> <Component> (\[<ADDR>\])? <Content>`,
		CensorPatterns: []string{
			`((\d+\.){3}\d+,?)+`,
			`/.+?\s`,
		},
		IsBuiltin: true,
	},
	{
		Name:     types.FormatSpark,
		Template: `<Date> <Time> <Level> <Component>: <Content>`,
		CensorPatterns: []string{
			`(\d+\.){3}\d+`,
			`\b[KGTM]?B\b`,
			`([\w-]+\.){2,}[\w-]+`,
		},
		IsBuiltin: true,
	},
	{
		Name:     types.FormatHDFS,
		Template: `<Date> <Time> <Pid> <Level> <Component>: <Content>`,
		CensorPatterns: []string{
			`blk_(|-)[0-9]+`,
			`(/|)([0-9]+\.){3}[0-9]+(:[0-9]+|)(:|)`,
		},
		IsBuiltin: true,
	},
	{
		Name:     types.FormatHPC,
		Template: `<LogId> <Node> <Component> <State> <Time> <Flag> <Content>`,
		CensorPatterns: []string{
			`=\d+`,
		},
		IsBuiltin: true,
	},
	{
		Name:     types.FormatProxifier,
		Template: `\[<Time>\] <Program> - <Content>`,
		CensorPatterns: []string{
			`<\d+\ssec`,
			`([\w-]+\.)+[\w-]+(:\d+)?`,
			`\d{2}:\d{2}(:\d{2})*`,
			`[KGTM]B`,
		},
		IsBuiltin: true,
	},
	{
		Name:     types.FormatAndroid,
		Template: `<Date> <Time>  <Pid>  <Tid> <Level> <Component>: <Content>`,
		CensorPatterns: []string{
			`(/[\w-]+)+`,
			`([\w-]+\.){2,}[\w-]+`,
			`\b(\-?\+?\d+)\b|\b0[Xx][a-fA-F\d]+\b|\b[a-fA-F\d]{4,}\b`,
		},
		IsBuiltin: true,
	},
	{
		Name:           types.FormatHealthApp,
		Template:       `<Time>\|<Component>\|<Pid>\|<Content>`,
		CensorPatterns: []string{},
		IsBuiltin:      true,
	},
}

// Registry holds the live set of LogFormats: the built-in eight seeded at
// construction plus any custom formats loaded at runtime.
type Registry struct {
	formats map[types.LogFormatName]LogFormat
}

// NewRegistry returns a Registry seeded with the closed built-in set.
func NewRegistry() *Registry {
	r := &Registry{formats: make(map[types.LogFormatName]LogFormat, len(builtins))}
	for _, f := range builtins {
		r.formats[f.Name] = f
	}
	return r
}

// Get looks up a format by name.
func (r *Registry) Get(name types.LogFormatName) (LogFormat, bool) {
	f, ok := r.formats[name]
	return f, ok
}

// Register adds a custom format. It is rejected if the name collides
// with a built-in — custom formats can never shadow the closed set.
func (r *Registry) Register(f LogFormat) error {
	if existing, ok := r.formats[f.Name]; ok && existing.IsBuiltin {
		return &BuiltinNameCollisionError{Name: f.Name}
	}
	f.IsBuiltin = false
	r.formats[f.Name] = f
	return nil
}

// BuiltinNameCollisionError reports an attempt to register a custom
// format reusing one of the eight built-in names.
type BuiltinNameCollisionError struct {
	Name types.LogFormatName
}

func (e *BuiltinNameCollisionError) Error() string {
	return "custom format name \"" + string(e.Name) + "\" collides with a built-in log format"
}
