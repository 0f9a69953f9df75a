package github

import "fmt"

// Locator builds the browsable web URL for an indexed repository file.
func Locator(owner, name, branch, path string) string {
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", owner, name, branch, path)
}
