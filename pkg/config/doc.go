/*
Package config loads codestyle configuration.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |   HCL   | |   JSON    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Names the root directory, so nothing is hard-coded
- Picks a rule set, builtin or defined in the file
- Lists ignore globs for discovery

🔄 Flow:
1. Reads the file (a missing default file means Default())
2. Picks a parser by extension
3. Fills defaults and validates every custom rule
4. Resolves the root against the config file's directory

📝 Keys (all optional):

	root      directory to rewrite, default "core"
	rule_set  rule set to apply, default "member"
	ignore    doublestar globs skipped during discovery
	dry_run   report changes without writing
	rule_sets custom rule sets ("rules" blocks in HCL)
*/
package config
