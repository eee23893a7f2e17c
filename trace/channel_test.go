package trace_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/perfestimate/trace"
)

var _ = Describe("Window", func() {
	var w *trace.Window

	BeforeEach(func() {
		w = trace.NewWindow(trace.WindowSize)
	})

	It("starts with instrIndex 0", func() {
		Expect(w.InstrIndex()).To(Equal(0))
	})

	It("advances instrIndex on Update", func() {
		w.Update()
		w.Update()
		Expect(w.InstrIndex()).To(Equal(2))
	})

	It("resets instrIndex on NewTraceBlock", func() {
		w.Update()
		w.Update()
		w.NewTraceBlock()
		Expect(w.InstrIndex()).To(Equal(0))
	})

	It("panics when constructed below the minimum window size", func() {
		Expect(func() { trace.NewWindow(1) }).To(Panic())
	})

	Describe("Connect", func() {
		It("resolves every required column", func() {
			bound, err := trace.Connect(w)
			Expect(err).NotTo(HaveOccurred())
			Expect(bound).NotTo(BeNil())
		})

		It("reads back values written through Set", func() {
			w.Set(0, 10, 0x1000, 1, 2, 3, 0x2000, 0x3000, 42, 7)
			bound, err := trace.Connect(w)
			Expect(err).NotTo(HaveOccurred())

			Expect(bound.TypeID(0)).To(Equal(int32(10)))
			Expect(bound.PC(0)).To(Equal(uint64(0x1000)))
			Expect(bound.RS1(0)).To(Equal(uint64(1)))
			Expect(bound.RS2(0)).To(Equal(uint64(2)))
			Expect(bound.RD(0)).To(Equal(uint64(3)))
			Expect(bound.BrTarget(0)).To(Equal(uint64(0x2000)))
			Expect(bound.MemAddr(0)).To(Equal(uint64(0x3000)))
			Expect(bound.RS1Data(0)).To(Equal(uint64(42)))
			Expect(bound.RS2Data(0)).To(Equal(uint64(7)))
		})

		It("fails with a MismatchError when a required column is missing", func() {
			_, err := trace.Connect(incompleteChannel{})
			Expect(err).To(HaveOccurred())
			var mismatch *trace.MismatchError
			Expect(err).To(BeAssignableToTypeOf(mismatch))
		})
	})
})

// incompleteChannel implements trace.Channel but refuses to resolve any
// column, modeling a channel missing required trace fields.
type incompleteChannel struct{}

func (incompleteChannel) GetTraceValueHook(trace.Column) (trace.ColumnView, bool) { return nil, false }
func (incompleteChannel) NewTraceBlock()                                         {}
func (incompleteChannel) Update()                                                {}
func (incompleteChannel) InstrIndex() int                                        { return 0 }
