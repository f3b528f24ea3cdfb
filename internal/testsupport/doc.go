// Package testsupport holds helpers shared by package tests: stub
// executables for provider and dependency checks, and an isolated home
// directory so configuration lookups never see the developer's files.
package testsupport
