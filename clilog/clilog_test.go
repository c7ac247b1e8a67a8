package clilog_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/netlistdb/clilog"
)

type recordingSink struct {
	messages []string
}

func (r *recordingSink) Log(level clilog.Level, tag clilog.Tag, msg string) {
	r.messages = append(r.messages, msg)
}

var _ = Describe("Logger", func() {
	It("suppresses a tag after its max print count and prints one final notice", func() {
		sink := &recordingSink{}
		l := clilog.NewLogger(sink)
		l.SetMaxPrintCount(3)

		for i := 0; i < 10; i++ {
			l.Warn("TEST_TAG", "occurrence %d", i)
		}

		Expect(sink.messages).To(HaveLen(4)) // 3 real + 1 suppression notice
		Expect(sink.messages[3]).To(ContainSubstring("suppressed"))
	})

	It("tracks suppression independently per tag", func() {
		sink := &recordingSink{}
		l := clilog.NewLogger(sink)
		l.SetMaxPrintCount(1)

		l.Warn("A", "one")
		l.Warn("B", "two")

		Expect(sink.messages).To(HaveLen(4))
	})
})
