/*
Package operation implements the rewrite pipeline.

	+-------------+     +-------------+     +-------------+
	|    walk     | --> |    text     | --> |   status    |
	| (discover)  |     | (transform) |     |  (commit)   |
	+-------------+     +-------------+     +-------------+

🔄 Flow, one file at a time:
1. walk.Files yields the next regular file under the root
2. the FileManager reads its full content
3. the Rewriter applies every rule, in order, to the whole text
4. changed content is committed by truncating and rewriting the file, or
   only reported when dry running
5. the outcome is tracked and one console line is printed

⚡ Failure:
The first error stops the run. Nothing is rolled back, so every file
processed before the failure keeps its new content and every file after it
is untouched.

🔍 Example:

	op, err := operation.NewRewriteOperation(operation.Options{
		Files:    status.NewDirManager("core"),
		Rewriter: engine,
		Tracker:  status.NewTracker(),
	})
	err = operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op)
*/
package operation
