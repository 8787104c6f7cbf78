// Package reqs handles line-oriented pip requirements files: parsing
// requirement lines into package names, fingerprinting files for change
// detection, and filtering out packages the launcher itself depends on.
//
// A requirements file is plain text: blank lines are ignored, lines
// starting with "#" are comments, and every other line is a requirement
// specifier in the common "name[comparator version]" form with the
// comparators ==, >=, <=, >, < and !=.
package reqs
