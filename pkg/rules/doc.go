// Package rules decides where a file belongs.
//
// A RuleSet is compiled once from the configuration and is immutable
// afterwards. Classify is pure: it looks only at the file's name and the
// timestamp carried in FileMeta, never at the filesystem.
//
// # Classification Order
//
//   - A file whose extension is in ignore_extensions, whose name is in
//     ignore_files, or whose name matches an ignore_patterns glob is Ignored.
//   - Otherwise the first rule (in declaration order) listing the file's
//     extension claims it and the file is Matched.
//   - Otherwise the file is Unmatched and stays where it is, unless an
//     extras folder is configured, in which case it is Matched to the
//     Extras category.
//
// Extensions are compared case-insensitively. A name that starts with a
// dot and has no other dot (".bashrc") has no extension.
//
// # Date Folders
//
// With organize_by_date the target folder gains a subfolder formatted from
// FileMeta.ModTime using strftime syntax:
//
//	date_format = "%Y-%m"   ->  ~/Organized/Images/2024-03
//	date_format = "%Y/%m"   ->  ~/Organized/Images/2024/03
package rules
