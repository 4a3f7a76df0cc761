package structure

// Grammar names the node types the walker cares about. Node types absent
// from every set are descended into but otherwise ignored.
type Grammar struct {
	// Compound statements own a header and one or more bodies.
	Compound map[string]bool
	// Small statements are single-line (or continued) simple statements.
	Small map[string]bool
	// Body nodes hold the indented statements of a compound statement.
	Body map[string]bool
	// Clause nodes (elif, else, except...) have their children folded into
	// the enclosing compound statement.
	Clause map[string]bool
	// Ignore lists children that never start or end a header, like comments.
	Ignore map[string]bool
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Python is the grammar for tree-sitter-python.
var Python = Grammar{
	Compound: set(
		"if_statement",
		"while_statement",
		"for_statement",
		"try_statement",
		"with_statement",
		"function_definition",
		"class_definition",
		"match_statement",
		"case_clause",
		"decorated_definition",
	),
	Small: set(
		"expression_statement",
		"pass_statement",
		"return_statement",
		"break_statement",
		"continue_statement",
		"delete_statement",
		"raise_statement",
		"import_statement",
		"import_from_statement",
		"future_import_statement",
		"global_statement",
		"nonlocal_statement",
		"assert_statement",
		"print_statement",
		"exec_statement",
		"type_alias_statement",
	),
	Body: set("block"),
	Clause: set(
		"elif_clause",
		"else_clause",
		"except_clause",
		"except_group_clause",
		"finally_clause",
	),
	Ignore: set("comment"),
}
