package main

import (
	"reflect"
	"testing"
)

func TestSplitCommaList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"com", []string{"com"}},
		{"com,net", []string{"com", "net"}},
		{" COM , net ,, com ", []string{"com", "net"}},
		{"", []string{}},
		{" , ", []string{}},
	}

	for _, tt := range tests {
		got := splitCommaList(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitCommaList(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestReadDomainsFromArgsAndStdin_ArgsOnly(t *testing.T) {
	t.Parallel()

	got, err := readDomainsFromArgsAndStdin([]string{" foo.com ", "", "bar.net"}, nil)
	if err != nil {
		t.Fatalf("readDomainsFromArgsAndStdin: %v", err)
	}
	want := []string{"foo.com", "bar.net"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
