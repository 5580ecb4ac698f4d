package verify

import (
	stderrors "errors"

	"chaoslab/internal/errors"
	"chaoslab/internal/ir"
	"chaoslab/internal/parser"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Simulate", func() {
	run := func(src string) (*Result, error) {
		program, err := parser.Parse(src)
		Expect(err).NotTo(HaveOccurred())
		return Simulate(program)
	}

	It("should evaluate the demo program", func() {
		result, err := run("int main() { int x = 10; int y = 20; int z = x + y; return z; }")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Value()).To(Equal(int64(30)))
		Expect(result.Outputs).To(Equal([]int64{30}))
		Expect(result.Vars).To(HaveKeyWithValue("z", int64(30)))
	})

	It("should evaluate every operator", func() {
		result, err := run(`int a = 17; int b = a - 3; int c = b * 2; int d = c / 5; return d; return b;`)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Outputs).To(Equal([]int64{5, 14}))
		Expect(result.Value()).To(Equal(int64(14)))
	})

	It("should truncate division toward zero", func() {
		result, err := run(`int a = 0; int b = a - 7; int c = b / 2; return c;`)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Value()).To(Equal(int64(-3)))
	})

	It("should return zero when nothing is printed", func() {
		result, err := run(`int a = 1;`)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Value()).To(BeZero())
	})

	It("should ignore NOOPs", func() {
		program := ir.NewProgram()
		program.AddNoop()
		program.AddMove("x", "4")
		program.AddNoop()
		program.AddPrint("x")
		result, err := Simulate(program)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Value()).To(Equal(int64(4)))
	})

	It("should reject undefined variables with a suggestion", func() {
		_, err := run(`int total = 3; return totl;`)
		Expect(err).To(HaveOccurred())

		var simErr *SimulationError
		Expect(stderrors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Code).To(Equal(errors.ErrorUndefinedVariable))
		Expect(simErr.Index).To(Equal(1))
		Expect(simErr.Message).To(ContainSubstring("did you mean 'total'?"))
	})

	It("should reject division by zero", func() {
		_, err := run(`int a = 5; int b = a / 0; return b;`)

		var simErr *SimulationError
		Expect(stderrors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Code).To(Equal(errors.ErrorDivisionByZero))
		Expect(simErr.Instruction).To(Equal("b = a / 0"))
	})

	It("should reject numerals that overflow int64", func() {
		_, err := run(`int a = 99999999999999999999; return a;`)
		Expect(err).To(MatchError(ContainSubstring("out of range")))

		var simErr *SimulationError
		Expect(stderrors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Code).To(Equal(errors.ErrorNumeralOutOfRange))
	})
})
