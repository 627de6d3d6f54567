// Package siteconfig holds the BuildConfiguration handed to the external
// static-site build tool at startup: which paths are copied verbatim, where
// input, includes, data and output live, which file extensions are templates,
// and which engine pre-processes HTML and Markdown.
//
// Default returns the project's fixed configuration. Values are plain data;
// every call builds fresh slices so callers never share state.
package siteconfig
