package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version || info.Commit != Commit || info.Date != Date {
		t.Errorf("Get() = %+v, want package variables", info)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.HasPrefix(String(), "version: "+Version) {
		t.Errorf("String() = %q", String())
	}
}
