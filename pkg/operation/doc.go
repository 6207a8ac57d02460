/*
Package operation runs rule sets against files on disk.

	+-------------+
	|  Operation  |
	| (Patch)     |
	+------+------+
	       |
	+------+------+      +-------------+
	|  Pipeline   | ---> |   status    |
	| (text)      |      | FileManager |
	+------+------+      +-------------+

🎯 Purpose:
- Reads the target file as one buffer
- Runs the rule set over it in order
- Writes the final buffer back to the same path

🔄 Flow:
1. FileManager reads the whole file
2. Pipeline applies each rule to the output of the previous one
3. FileManager writes the whole file atomically
4. Per-rule lines and one confirmation go to the console logger

A rule whose pattern is absent is skipped, not an error. Read and write
failures abort the operation and are returned wrapped.

🔍 Example:

	op, err := operation.NewPatchOperation(operation.Options{
		Path:    "packages/react-reconciler/src/ReactFiberWorkLoop.js",
		RuleSet: fiberworkloop.RuleSet(),
		Console: console,
	})
	if err != nil {
		return err
	}
	err = operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op)
*/
package operation
