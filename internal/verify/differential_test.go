package verify

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"

	"chaoslab/internal/chaos"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const demoSource = "int main() { int x = 10; int y = 20; int z = x + y; return z; }"

var _ = Describe("Differential", func() {
	var (
		mockCtrl  *gomock.Controller
		refRunner *MockRunner
		chaosRun  *MockRunner
		ctx       context.Context
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		refRunner = NewMockRunner(mockCtrl)
		chaosRun = NewMockRunner(mockCtrl)
		ctx = context.Background()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should pass when both artifacts agree", func() {
		refRunner.EXPECT().Run(gomock.Any(), "./ref.bin").Return(30, nil)
		chaosRun.EXPECT().Run(gomock.Any(), "./chaos.bin").Return(30, nil)

		report, err := Differential(ctx, refRunner, chaosRun, "./ref.bin", "./chaos.bin")
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Match).To(BeTrue())
		Expect(report.Reference).To(Equal(30))
		Expect(report.Chaos).To(Equal(30))
	})

	It("should fail when the results differ", func() {
		refRunner.EXPECT().Run(gomock.Any(), "a").Return(30, nil)
		chaosRun.EXPECT().Run(gomock.Any(), "b").Return(31, nil)

		report, err := Differential(ctx, refRunner, chaosRun, "a", "b")
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Match).To(BeFalse())

		var buf bytes.Buffer
		Expect(report.Write(&buf)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("FAILED"))
	})

	It("should not run the chaos build when the reference fails", func() {
		refRunner.EXPECT().Run(gomock.Any(), "a").Return(0, stderrors.New("segfault"))

		_, err := Differential(ctx, refRunner, chaosRun, "a", "b")
		Expect(err).To(MatchError(ContainSubstring("reference run failed: segfault")))
	})

	It("should report chaos build failures", func() {
		refRunner.EXPECT().Run(gomock.Any(), "a").Return(1, nil)
		chaosRun.EXPECT().Run(gomock.Any(), "b").Return(0, stderrors.New("timeout"))

		_, err := Differential(ctx, refRunner, chaosRun, "a", "b")
		Expect(err).To(MatchError(ContainSubstring("chaos run failed")))
	})
})

var _ = Describe("Source", func() {
	It("should preserve the result for many seeds", func() {
		for seed := int64(1); seed <= 50; seed++ {
			passes, err := chaos.PassesByName(chaos.AvailablePassNames())
			Expect(err).NotTo(HaveOccurred())

			report, err := Source(context.Background(), demoSource,
				chaos.WithSeed(seed), chaos.WithPasses(passes...))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Match).To(BeTrue(), "seed %d", seed)
			Expect(report.Reference).To(Equal(30))
			Expect(report.ChaosReport.Seed).To(Equal(seed))
		}
	})

	It("should keep the reference program untouched", func() {
		report, err := Source(context.Background(), demoSource, chaos.WithSeed(3))
		Expect(err).NotTo(HaveOccurred())
		Expect(report.ReferenceProgram.Len()).To(Equal(4))
		Expect(report.ChaosProgram.Len()).To(BeNumerically(">=", 4))

		var buf bytes.Buffer
		Expect(report.Write(&buf)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("PASSED"))
	})

	It("should surface syntax errors", func() {
		_, err := Source(context.Background(), "int x 10;")
		Expect(err).To(MatchError(ContainSubstring("expected ASSIGN, got NUMBER")))
	})

	It("should honor a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Source(ctx, demoSource)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("ExecRunner", func() {
	var dir string

	BeforeEach(func() {
		if runtime.GOOS == "windows" {
			Skip("shell scripts are not executable on windows")
		}
		dir = GinkgoT().TempDir()
	})

	script := func(name, body string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)).To(Succeed())
		return path
	}

	It("should parse the last line of stdout", func() {
		path := script("print.sh", "echo starting\necho 30")
		v, err := ExecRunner{}.Run(context.Background(), path)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(30))
	})

	It("should fall back to the exit code", func() {
		path := script("exit.sh", "exit 7")
		v, err := ExecRunner{}.Run(context.Background(), path)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(7))
	})

	It("should reject non-numeric output", func() {
		path := script("words.sh", "echo hello")
		_, err := ExecRunner{}.Run(context.Background(), path)
		Expect(err).To(MatchError(ContainSubstring("not an integer")))
	})

	It("should surface a failing exit after output", func() {
		path := script("partial.sh", "echo 30\nexit 3")
		_, err := ExecRunner{}.Run(context.Background(), path)
		Expect(err).To(MatchError(ContainSubstring("failed after printing output")))
	})

	It("should surface termination by a signal", func() {
		path := script("killed.sh", "echo 30\nkill -9 $$")
		_, err := ExecRunner{}.Run(context.Background(), path)
		Expect(err).To(MatchError(ContainSubstring("terminated abnormally")))
	})

	It("should fail for a missing artifact", func() {
		_, err := ExecRunner{}.Run(context.Background(), filepath.Join(dir, "missing"))
		Expect(err).To(HaveOccurred())
	})
})
