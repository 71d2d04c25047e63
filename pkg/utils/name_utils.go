package utils

import "strings"

// tfUnsafeChars are the characters replaced with an underscore when
// converting a security group name into a Terraform resource name.
const tfUnsafeChars = " ~`!@#$%^&*()-=+[]{};:'\",.<>/?\\|"

// TFSafeName lowercases text and replaces symbols and spaces with single
// underscores so it can be used as a Terraform resource name.
func TFSafeName(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if strings.ContainsRune(tfUnsafeChars, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	return Dedup("_", b.String())
}

// TFSafeSGName returns the Terraform-safe form of a security group name,
// suffixed with "_sg" when not already present.
func TFSafeSGName(sgName string) string {
	safeName := TFSafeName(sgName)
	if !strings.HasSuffix(safeName, "_sg") {
		safeName += "_sg"
	}
	return safeName
}

// Dedup collapses adjacent duplicates of char in text
func Dedup(char, text string) string {
	double := char + char
	for strings.Contains(text, double) {
		text = strings.ReplaceAll(text, double, char)
	}
	return text
}
