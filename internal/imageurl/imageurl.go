// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imageurl canonicalizes stored asset references. References may
// have been written as absolute URLs, root-relative paths, data URIs, or
// bare upload filenames depending on which upload path produced them; this
// package maps all of them to one servable form.
package imageurl

import "strings"

// UploadPrefix is prepended to bare filenames stored by the upload
// subsystem.
const UploadPrefix = "/uploads/"

// Normalize canonicalizes an asset reference. Empty input stays empty;
// absolute http(s) URLs, root-relative paths, and data URIs pass through
// unchanged; anything else is treated as an upload filename and prefixed
// with UploadPrefix. Normalize is idempotent.
func Normalize(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") ||
		strings.HasPrefix(ref, "/") ||
		strings.HasPrefix(ref, "data:") {
		return ref
	}
	return UploadPrefix + ref
}

// NormalizePtr applies Normalize to a nullable column value. Nil and empty
// references yield nil.
func NormalizePtr(ref *string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	n := Normalize(*ref)
	return &n
}
