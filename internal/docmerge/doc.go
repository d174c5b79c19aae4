// Package docmerge is the idempotent merge engine behind packdocs. It splices
// freshly generated fragments (badge blocks, installation sections) into an
// existing README without disturbing hand-authored prose. Documents are plain
// text scanned line by line on every call; nothing structural is cached
// between operations. Replacement swaps the exact line range a located block
// occupies, insertion picks a deterministic anchor (after the first top-level
// heading, before a well-known section, or end of document), and running the
// same merge twice always leaves the second pass a no-op.
package docmerge
