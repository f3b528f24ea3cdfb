package testsupport

import "testing"

// IsolateHome points HOME and XDG_RUNTIME_DIR at a temp directory, clears
// MBDISCID_PROVIDER and changes into the directory. It returns the path.
func IsolateHome(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("XDG_RUNTIME_DIR", base)
	t.Setenv("MBDISCID_PROVIDER", "")
	t.Chdir(base)
	return base
}
