package parser

import (
	"github.com/trivago/grok"
)

// headerGrok matches the "[time] channel.LEVEL: message" header convention.
// The time part is left as written, so it works before and after date
// stripping.
const headerGrok = `^\[%{DATA:time}\] %{NOTSPACE:channel}\.%{WORD:level}: %{GREEDYDATA:message}`

// Fields is the decomposition of an entry header.
type Fields struct {
	Time    string `json:"time"`
	Channel string `json:"channel"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

var compiledHeader = mustCompileHeader()

func mustCompileHeader() *grok.CompiledGrok {
	g, err := grok.New(grok.Config{
		NamedCapturesOnly: true,
	})
	if err != nil {
		panic(err)
	}
	c, err := g.Compile(headerGrok)
	if err != nil {
		panic(err)
	}
	return c
}

// HeaderFields splits header into its parts. It reports false when the
// header does not follow the channel.LEVEL: message convention.
func HeaderFields(header string) (Fields, bool) {
	m := compiledHeader.ParseString(header)
	if len(m) == 0 {
		return Fields{}, false
	}
	return Fields{
		Time:    m["time"],
		Channel: m["channel"],
		Level:   m["level"],
		Message: m["message"],
	}, true
}
