// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jython/jbang-catalog/internal/app/launch"
	"github.com/jython/jbang-catalog/internal/config"
	"github.com/jython/jbang-catalog/internal/directive"
	"github.com/jython/jbang-catalog/internal/invocation"
	"github.com/jython/jbang-catalog/internal/javaver"
	"github.com/jython/jbang-catalog/internal/resolve"
	"github.com/jython/jbang-catalog/internal/runtime"
	"github.com/jython/jbang-catalog/internal/testutil"
	"github.com/jython/jbang-catalog/pkg/types"
)

// sampleBlock is a representative jbang block.
var sampleBlock = []string{
	"#!/usr/bin/env jython-cli",
	"# /// jbang",
	`# requires-jython = "2.7.4"`,
	`# requires-java = "21"`,
	"# dependencies = [",
	`#   "io.leego:banana:2.1.0",`,
	`#   "com.h2database:h2:2.2.224",`,
	`#   "org.apache.commons:commons-lang3:3.14.0",`,
	"# ]",
	`# runtime-options = ["-Xmx2g", "-Dpython.console.encoding=UTF-8"]`,
	"# [java]",
	`# runtime-options = "-Dfile.encoding=UTF-8"`,
	"# [jython-cli]",
	"# debug = false",
	"# ///",
}

// largeScript returns a script with the block followed by n lines of code,
// including a foreign block the extractor must skip.
func largeScript(n int) []string {
	lines := append([]string{}, sampleBlock...)
	lines = append(lines, "# /// script", `# dependencies = ["requests"]`, "# ///")
	for i := range n {
		lines = append(lines, fmt.Sprintf("print('line %d')  # comment", i))
	}
	return lines
}

// BenchmarkExtract benchmarks the block scanner on a short script.
func BenchmarkExtract(b *testing.B) {
	for b.Loop() {
		if block := directive.Jbang.Extract(sampleBlock); !block.Extracted() {
			b.Fatal("block not extracted")
		}
	}
}

// BenchmarkExtractLarge benchmarks the scan of a long script whose block
// sits at the top.
func BenchmarkExtractLarge(b *testing.B) {
	lines := largeScript(10_000)

	b.ResetTimer()
	for b.Loop() {
		if block := directive.Jbang.Extract(lines); !block.Extracted() {
			b.Fatal("block not extracted")
		}
	}
}

// BenchmarkResolve benchmarks TOML parsing and the precedence rules.
func BenchmarkResolve(b *testing.B) {
	block := directive.Jbang.Extract(sampleBlock)
	defaults := resolve.NewEffectiveConfig(resolve.Defaults{InterpreterVersion: "2.7.4", HostVersion: "21"})
	r := resolve.Resolver{}

	b.ResetTimer()
	for b.Loop() {
		if _, err := r.Resolve(block, defaults); err != nil {
			b.Fatalf("Resolve failed: %v", err)
		}
	}
}

// BenchmarkAssemble benchmarks the direct invocation and the shim text.
func BenchmarkAssemble(b *testing.B) {
	block := directive.Jbang.Extract(sampleBlock)
	cfg, err := resolve.Resolver{}.Resolve(block, resolve.NewEffectiveConfig(resolve.Defaults{InterpreterVersion: "2.7.4"}))
	if err != nil {
		b.Fatal(err)
	}
	opts := invocation.DefaultOptions("linux")
	forwarded := []string{"hello.py", "--name", "world"}

	b.Run("direct", func(b *testing.B) {
		for b.Loop() {
			_ = invocation.Assemble(cfg, forwarded, opts)
		}
	})
	b.Run("shim", func(b *testing.B) {
		for b.Loop() {
			shim, err := invocation.NewShim(cfg, "hello.py", opts)
			if err != nil {
				b.Fatal(err)
			}
			_ = invocation.AssembleShim(cfg, shim, forwarded, opts)
		}
	})
}

// BenchmarkConfigLoad benchmarks CUE validation of the config file merged
// through viper.
func BenchmarkConfigLoad(b *testing.B) {
	dir := b.TempDir()
	testutil.MustWriteFile(b, filepath.Join(dir, "config.cue"), `
jython: version: "2.7.3"
java: {
	fallback: "17"
	minimum: 11
}
launcher: shim: true
`)
	provider := config.NewProvider()
	opts := config.LoadOptions{ConfigDirPath: types.FilesystemPath(dir)}

	b.ResetTimer()
	for b.Loop() {
		if _, err := provider.Load(b.Context(), opts); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkFullPipeline benchmarks a launch from script file to the
// assembled command, with a launcher that returns immediately.
func BenchmarkFullPipeline(b *testing.B) {
	dir := b.TempDir()
	script := testutil.WriteScript(b, dir, "hello.py", append(sampleBlock, "print('hello')")...)

	noop := runtime.LauncherFunc(func(context.Context, string, []string) (types.ExitCode, error) {
		return types.ExitSuccess, nil
	})

	for _, shim := range []bool{false, true} {
		b.Run(fmt.Sprintf("shim=%t", shim), func(b *testing.B) {
			cfg := config.DefaultConfig()
			cfg.Launcher.Shim = shim
			svc := launch.New(launch.Dependencies{
				Config:   cfg,
				Prober:   javaver.StaticProber("21.0.2"),
				Launcher: noop,
				WorkDir:  b.TempDir(),
			})
			req := launch.ParseArgs([]string{script, "--name", "world"})

			b.ResetTimer()
			for b.Loop() {
				res, err := svc.Run(b.Context(), req)
				if err != nil {
					b.Fatalf("Run failed: %v", err)
				}
				if !strings.HasPrefix(res.Invocation.String(), "jbang run") {
					b.Fatalf("unexpected invocation %q", res.Invocation)
				}
			}
		})
	}
}
