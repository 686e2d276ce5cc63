package tabular

import (
	"errors"
	"strings"
	"testing"

	"github.com/mesh-intelligence/txlens/pkg/types"
)

func TestParseHeaderDerivedSchema(t *testing.T) {
	t.Run("rows keyed by header names", func(t *testing.T) {
		res, err := Parse(strings.NewReader("txId,class\n100,1\n200,2\n"), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(res.Rows))
		}
		if res.Rows[0]["txId"] != "100" || res.Rows[0]["class"] != "1" {
			t.Fatalf("unexpected first row %v", res.Rows[0])
		}
		if res.Rows[1]["txId"] != "200" {
			t.Fatalf("unexpected second row %v", res.Rows[1])
		}
	})

	t.Run("headerless input uses positional names", func(t *testing.T) {
		opts := DefaultOptions()
		opts.HasHeader = false
		res, err := Parse(strings.NewReader("100,5,0.1\n200,6,0.2\n"), opts)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(res.Rows))
		}
		if res.Rows[0]["0"] != "100" || res.Rows[0]["1"] != "5" || res.Rows[0]["2"] != "0.1" {
			t.Fatalf("unexpected row %v", res.Rows[0])
		}
	})

	t.Run("empty header cell falls back to position", func(t *testing.T) {
		res, err := Parse(strings.NewReader("txId,,class\n100,7,1\n"), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if res.Rows[0]["1"] != "7" {
			t.Fatalf("positional fallback missing: %v", res.Rows[0])
		}
	})

	t.Run("first non-empty line is the header", func(t *testing.T) {
		res, err := Parse(strings.NewReader("\n\ntxId,class\n100,1\n"), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Rows) != 1 || res.Rows[0]["txId"] != "100" {
			t.Fatalf("unexpected rows %v", res.Rows)
		}
	})
}

func TestParseRowTolerance(t *testing.T) {
	t.Run("wrong column count warns and skips", func(t *testing.T) {
		res, err := Parse(strings.NewReader("txId,class\n100,1\n200\n300,2,extra\n400,1\n"), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Rows) != 2 {
			t.Fatalf("expected 2 accepted rows, got %d", len(res.Rows))
		}
		if len(res.Warnings) != 2 {
			t.Fatalf("expected 2 warnings, got %d: %v", len(res.Warnings), res.Warnings)
		}
		if res.Warnings[0].Line != 3 {
			t.Fatalf("expected warning on line 3, got %d", res.Warnings[0].Line)
		}
	})

	t.Run("empty lines skipped when configured", func(t *testing.T) {
		res, err := Parse(strings.NewReader("txId,class\n100,1\n,\n200,2\n"), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(res.Rows))
		}
	})

	t.Run("max rows ceiling", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MaxRows = 2
		res, err := Parse(strings.NewReader("txId,class\n1,1\n2,1\n3,1\n4,1\n"), opts)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(res.Rows))
		}
	})

	t.Run("alternate delimiter", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Delimiter = '\t'
		res, err := Parse(strings.NewReader("txId\tclass\n100\t1\n"), opts)
		if err != nil {
			t.Fatal(err)
		}
		if res.Rows[0]["class"] != "1" {
			t.Fatalf("unexpected row %v", res.Rows[0])
		}
	})
}

func TestParseStructuralFailures(t *testing.T) {
	t.Run("size ceiling rejected before parsing", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MaxInputSizeBytes = 16
		_, err := Parse(strings.NewReader("txId,class\n100,1\n200,2\n"), opts)
		if !errors.Is(err, types.ErrSizeLimitExceeded) {
			t.Fatalf("expected ErrSizeLimitExceeded, got %v", err)
		}
	})

	t.Run("input within ceiling parses", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MaxInputSizeBytes = 1024
		res, err := Parse(strings.NewReader("txId,class\n100,1\n"), opts)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(res.Rows))
		}
	})

	t.Run("undecodable bytes fail with ErrParse", func(t *testing.T) {
		_, err := Parse(strings.NewReader("txId,class\n\xff\xfe\xfd,1\n"), DefaultOptions())
		if !errors.Is(err, types.ErrParse) {
			t.Fatalf("expected ErrParse, got %v", err)
		}
	})

	t.Run("empty input yields zero rows without error", func(t *testing.T) {
		res, err := Parse(strings.NewReader(""), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Rows) != 0 {
			t.Fatalf("expected no rows, got %d", len(res.Rows))
		}
	})
}
