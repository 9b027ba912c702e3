package integration

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/yash27-lab/primer-scout/internal/app"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errB bytes.Buffer
	code := app.Run(argv, &out, &errB)
	return code, out.String(), errB.String()
}

func TestEndToEndHits(t *testing.T) {
	fa := write(t, "itest.fa", ">chr1\nATGGATGC\n")
	pf := write(t, "itest_primers.tsv", "name\tsequence\np1\tATGC\n")
	defer os.Remove(fa)
	defer os.Remove(pf)

	code, out, errS := run(t, "-p", pf, "-r", fa, "-k", "1", "--no-revcomp")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errS)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 hits:\n%s", len(lines), out)
	}
	if lines[1] != fa+"\tchr1\tp1\t4\t0\t4\t+\t1\tATGG" {
		t.Errorf("hit 1 = %q", lines[1])
	}
	if lines[2] != fa+"\tchr1\tp1\t4\t4\t8\t+\t0\tATGC" {
		t.Errorf("hit 2 = %q", lines[2])
	}
}

func TestEndToEndExactOnly(t *testing.T) {
	fa := write(t, "itest_k0.fa", ">chr1\nATGGATGC\n")
	pf := write(t, "itest_k0.tsv", "p1\tATGC\n")
	defer os.Remove(fa)
	defer os.Remove(pf)

	code, out, _ := run(t, "-p", pf, "-r", fa, "-k", "0", "--no-header", "--no-revcomp")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "\t4\t8\t+\t0\t") {
		t.Fatalf("want only the exact hit at start=4:\n%s", out)
	}
}

func TestEndToEndBothStrands(t *testing.T) {
	fa := write(t, "itest_rc.fa", ">chr1\nTTTATGCCCGGCATTT\n")
	pf := write(t, "itest_rc.tsv", "p1\tATGC\n")
	defer os.Remove(fa)
	defer os.Remove(pf)

	code, out, _ := run(t, "-p", pf, "-r", fa, "-k", "0", "--no-header")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want forward + reverse hits:\n%s", out)
	}
	if !strings.Contains(lines[0], "\t3\t7\t+\t") || !strings.Contains(lines[1], "\t10\t14\t-\t") {
		t.Errorf("unexpected rows:\n%s", out)
	}
}

func TestDeterministicAcrossThreads(t *testing.T) {
	var fasta strings.Builder
	for c := 0; c < 20; c++ {
		fmt.Fprintf(&fasta, ">contig_%02d\nACGTATGCACGTATGCATGGATGCACGT\n", c)
	}
	fa := write(t, "itest_thr.fa", fasta.String())
	pf := write(t, "itest_thr.tsv", "p1\tATGC\np2\tACGT\n")
	defer os.Remove(fa)
	defer os.Remove(pf)

	exec := func(threads int) string {
		code, out, errS := run(t, "-p", pf, "-r", fa, "-k", "1", "--threads", fmt.Sprint(threads))
		if code != 0 {
			t.Fatalf("exit %d (threads=%d): %s", code, threads, errS)
		}
		return out
	}
	if one, many := exec(1), exec(8); one != many {
		t.Fatal("output differs between 1 and 8 threads")
	}
}

func TestCountMatchesHitRows(t *testing.T) {
	fa := write(t, "itest_cnt.fa", ">c\nATGCATGCATGC\n")
	pf := write(t, "itest_cnt.tsv", "p1\tATGC\n")
	defer os.Remove(fa)
	defer os.Remove(pf)

	_, hitOut, _ := run(t, "-p", pf, "-r", fa, "--no-header")
	hitRows := strings.Count(hitOut, "\n")

	code, cntOut, _ := run(t, "-p", pf, "-r", fa, "--count-only")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if strings.TrimSpace(cntOut) != fmt.Sprint(hitRows) {
		t.Errorf("count %q != hit rows %d", strings.TrimSpace(cntOut), hitRows)
	}
}

func TestSummaryView(t *testing.T) {
	fa := write(t, "itest_sum.fa", ">c1\nTTTATGCCCGGCATTT\n>c2\nATGC\n")
	pf := write(t, "itest_sum.tsv", "p1\tATGC\n")
	defer os.Remove(fa)
	defer os.Remove(pf)

	code, out, _ := run(t, "-p", pf, "-r", fa, "-k", "0", "--summary", "--no-header")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	// p1: c1 fwd@3 + rev@10, c2 fwd@0 → 3 hits, all perfect, 2 contigs
	want := "p1\t4\t3\t3\t2\t1\t2\n"
	if out != want {
		t.Errorf("summary = %q, want %q", out, want)
	}
}

func TestJSONOutput(t *testing.T) {
	fa := write(t, "itest_json.fa", ">c\nATGC\n")
	pf := write(t, "itest_json.tsv", "p1\tATGC\n")
	defer os.Remove(fa)
	defer os.Remove(pf)

	code, out, _ := run(t, "-p", pf, "-r", fa, "--json", "--no-revcomp")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out, `"contig":"c"`) || !strings.Contains(out, `"strand":"+"`) {
		t.Errorf("json = %s", out)
	}
}

func TestGzippedReference(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, _ = zw.Write([]byte(">c\nATGC\n"))
	_ = zw.Close()
	fa := "itest_ref.fa.gz"
	if err := os.WriteFile(fa, gz.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	pf := write(t, "itest_gz.tsv", "p1\tATGC\n")
	defer os.Remove(fa)
	defer os.Remove(pf)

	code, out, errS := run(t, "-p", pf, "-r", fa, "--count-only")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errS)
	}
	if strings.TrimSpace(out) != "1" {
		t.Errorf("count = %q, want 1", out)
	}
}

func TestContigLimitAbortsWholeRun(t *testing.T) {
	t.Setenv("PRIMER_SCOUT_MAX_CONTIG_BASES", "4")
	fa := write(t, "itest_lim.fa", ">small\nATGC\n>big\nATGCATGC\n")
	pf := write(t, "itest_lim.tsv", "p1\tATGC\n")
	defer os.Remove(fa)
	defer os.Remove(pf)

	code, out, errS := run(t, "-p", pf, "-r", fa)
	if code != 3 {
		t.Fatalf("exit %d, want 3: %s", code, errS)
	}
	if out != "" {
		t.Errorf("no output may be emitted on a guard violation, got %q", out)
	}
	if !strings.Contains(errS, "input too large") {
		t.Errorf("stderr = %q", errS)
	}
}

func TestInvalidPrimerExitsUsage(t *testing.T) {
	fa := write(t, "itest_bad.fa", ">c\nATGC\n")
	pf := write(t, "itest_bad.tsv", "p1\tAT!C\n")
	defer os.Remove(fa)
	defer os.Remove(pf)

	code, _, errS := run(t, "-p", pf, "-r", fa)
	if code != 2 {
		t.Fatalf("exit %d, want 2: %s", code, errS)
	}
	if !strings.Contains(errS, "invalid sequence code") {
		t.Errorf("stderr = %q", errS)
	}
}

func TestMissingFlagsExitUsage(t *testing.T) {
	code, _, _ := run(t)
	if code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
}
