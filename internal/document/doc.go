// Package document reads and writes note files.
//
// A Store turns a file on disk into a Loaded value holding plain text and
// the document's ambient style, and writes text and style back. Files with
// an .rtf extension go through the rtf codec; every other extension is
// treated as plain text.
//
// Plain text is loaded with light encoding detection: UTF-16 files with a
// byte order mark are transcoded, a UTF-8 BOM is dropped, and content that
// is not valid UTF-8 is read as Latin-1. Files are always written as UTF-8.
package document
