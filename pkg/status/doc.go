/*
Package status reads and commits files and records what happened to each one.

	+-------------+        +-------------+
	| FileManager |        |   Tracker   |
	| (read/write)|        | (outcomes)  |
	+------+------+        +------+------+
	       |                      |
	  +----+-----+           +----+-----+
	  |   Dir    |           |  report  |
	  |   Mem    |           |  summary |
	  +----------+           +----------+

🎯 Purpose:
- Keeps filesystem access behind one interface so a run can be pointed at a
  real directory or an in-memory tree
- Commits content by truncating and rewriting the existing file
- Tracks per file outcome, checksum and replacement count

📝 Design:
Discovery goes through FileManager.FS, so the walker never sees the
difference between the two managers. Nothing here decides what content to
write; the operation package hands over finished bytes.
*/
package status
