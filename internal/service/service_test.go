package service_test

import (
	"errors"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/afero"

	"github.com/go-ports/dirctx/internal/config"
	"github.com/go-ports/dirctx/internal/operation"
	"github.com/go-ports/dirctx/internal/service"
	"github.com/go-ports/dirctx/internal/store"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const configPath = "/cfg/context/context_config.json"

const fixture = `{"context": {
	"/":          {"key1": "value1", "key2": "value2"},
	"/dir1":      {"key3": "value3", "key1": "value4"},
	"/dir1/dir2": {"key4": "value5", "key1": "value6"}
}}`

// newService returns a Service over an in-memory filesystem seeded with content.
// An empty content leaves the config file absent.
func newService(c *qt.C, content string, opts ...service.Option) (*service.Service, afero.Fs) {
	c.TB.Helper()
	fsys := afero.NewMemMapFs()
	if content != "" {
		c.Assert(afero.WriteFile(fsys, configPath, []byte(content), 0o600), qt.IsNil)
	}
	svc, err := service.New(fsys, configPath, opts...)
	c.Assert(err, qt.IsNil)
	return svc, fsys
}

func apply(c *qt.C, svc *service.Service, wd string, tokens ...string) *service.Result {
	c.TB.Helper()
	op, err := operation.Parse(tokens)
	c.Assert(err, qt.IsNil)
	res, err := svc.Apply(op, wd)
	c.Assert(err, qt.IsNil)
	return res
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_FailurePath(t *testing.T) {
	c := qt.New(t)

	_, err := service.New(afero.NewMemMapFs(), "")
	c.Assert(errors.Is(err, config.ErrNoConfigPath), qt.IsTrue)
}

func TestNew_AbsoluteConfigPath(t *testing.T) {
	c := qt.New(t)

	svc, err := service.New(afero.NewMemMapFs(), "relative.json")
	c.Assert(err, qt.IsNil)
	c.Assert(filepath.IsAbs(svc.ConfigPath()), qt.IsTrue)
}

// ---------------------------------------------------------------------------
// Apply
// ---------------------------------------------------------------------------

func TestApply_Print(t *testing.T) {
	c := qt.New(t)
	svc, _ := newService(c, fixture)

	c.Run("print all", func(c *qt.C) {
		res := apply(c, svc, "/dir1/dir2")
		c.Assert(res.WorkingDir, qt.Equals, "/dir1/dir2")
		c.Assert(res.Output(), qt.DeepEquals, map[string]string{
			"key1": "value6", "key2": "value2", "key3": "value3", "key4": "value5",
		})
	})

	c.Run("print one", func(c *qt.C) {
		res := apply(c, svc, "/dir1/dir2", "key3")
		c.Assert(res.Output(), qt.Equals, "value3")
	})

	c.Run("print missing key outputs nil", func(c *qt.C) {
		res := apply(c, svc, "/dir1", "print", "key4")
		c.Assert(res.Value, qt.IsNil)
		c.Assert(res.Output(), qt.IsNil)
	})
}

func TestApply_ShowConfigPath(t *testing.T) {
	c := qt.New(t)

	// A corrupt file would fail a strict open; showing the path never opens it.
	svc, _ := newService(c, "not json", service.WithStrict())
	res := apply(c, svc, "/anywhere", "config")
	c.Assert(res.Output(), qt.Equals, configPath)
	c.Assert(res.WorkingDir, qt.Equals, "")
}

func TestApply_MutationsArePersisted(t *testing.T) {
	c := qt.New(t)
	svc, fsys := newService(c, fixture)

	apply(c, svc, "/dir1/dir2", "add", "key5", "value9")
	apply(c, svc, "/dir1/dir2", "rm", "key1")

	s, err := store.Open(fsys, configPath, "/dir1/dir2")
	c.Assert(err, qt.IsNil)
	got, _ := s.Get("key5")
	c.Assert(got, qt.Equals, "value9")
	got, _ = s.Get("key1")
	c.Assert(got, qt.Equals, "value4")

	c.Assert(apply(c, svc, "/dir1/dir2", "add", "k", "v").Output(), qt.IsNil)
}

func TestApply_FirstAddCreatesFile(t *testing.T) {
	c := qt.New(t)
	svc, fsys := newService(c, "")

	apply(c, svc, "/project", "add", "env", "dev")

	exists, err := afero.Exists(fsys, configPath)
	c.Assert(err, qt.IsNil)
	c.Assert(exists, qt.IsTrue)
	c.Assert(apply(c, svc, "/project/sub", "env").Output(), qt.Equals, "dev")
}

func TestApply_FailurePath(t *testing.T) {
	c := qt.New(t)

	c.Run("save error propagates", func(c *qt.C) {
		fsys := afero.NewMemMapFs()
		c.Assert(afero.WriteFile(fsys, configPath, []byte(fixture), 0o600), qt.IsNil)
		svc, err := service.New(afero.NewReadOnlyFs(fsys), configPath)
		c.Assert(err, qt.IsNil)

		_, err = svc.Apply(operation.Operation{Kind: operation.Add, Key: "k", Value: "v"}, "/dir1")
		c.Assert(err, qt.ErrorMatches, "service.Apply: store.Save: .*")

		// Reads still work on the same filesystem.
		res, err := svc.Apply(operation.Operation{Kind: operation.PrintOne, Key: "key1"}, "/dir1")
		c.Assert(err, qt.IsNil)
		c.Assert(res.Output(), qt.Equals, "value4")
	})

	c.Run("corrupt file fails in strict mode", func(c *qt.C) {
		svc, _ := newService(c, "{broken", service.WithStrict())
		_, err := svc.Apply(operation.Operation{Kind: operation.PrintAll}, "/")
		c.Assert(errors.Is(err, store.ErrCorrupt), qt.IsTrue)
	})

	c.Run("corrupt file reads as empty by default", func(c *qt.C) {
		svc, _ := newService(c, "{broken")
		res := apply(c, svc, "/")
		c.Assert(res.Output(), qt.DeepEquals, map[string]string{})
	})

	c.Run("unknown operation kind", func(c *qt.C) {
		svc, _ := newService(c, fixture)
		_, err := svc.Apply(operation.Operation{Kind: operation.Kind(99)}, "/")
		c.Assert(err, qt.ErrorMatches, `service.Apply: unsupported operation Kind\(99\)`)
	})
}

// ---------------------------------------------------------------------------
// Init
// ---------------------------------------------------------------------------

func TestInit(t *testing.T) {
	c := qt.New(t)

	c.Run("creates directory and empty document", func(c *qt.C) {
		svc, fsys := newService(c, "")
		written, err := svc.Init(false)
		c.Assert(err, qt.IsNil)
		c.Assert(written, qt.IsTrue)

		b, err := afero.ReadFile(fsys, configPath)
		c.Assert(err, qt.IsNil)
		c.Assert(b, qt.DeepEquals, store.EmptyDocument)
	})

	c.Run("leaves existing file alone", func(c *qt.C) {
		svc, _ := newService(c, fixture)
		written, err := svc.Init(false)
		c.Assert(err, qt.IsNil)
		c.Assert(written, qt.IsFalse)
		c.Assert(apply(c, svc, "/", "key1").Output(), qt.Equals, "value1")
	})

	c.Run("force discards entries", func(c *qt.C) {
		svc, _ := newService(c, fixture)
		written, err := svc.Init(true)
		c.Assert(err, qt.IsNil)
		c.Assert(written, qt.IsTrue)
		c.Assert(apply(c, svc, "/dir1").Output(), qt.DeepEquals, map[string]string{})
	})

	c.Run("read-only filesystem", func(c *qt.C) {
		svc, err := service.New(afero.NewReadOnlyFs(afero.NewMemMapFs()), configPath)
		c.Assert(err, qt.IsNil)
		_, err = svc.Init(false)
		c.Assert(err, qt.ErrorMatches, "service.Init: .*")
	})
}
