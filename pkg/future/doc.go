/*
Package future provides single-assignment results for adapting callback-style
operations.

The document store's public surface is callback-based; Promisify lets callers
consume those operations as awaitable values instead:

	load := future.Promisify(func(done future.CompleteFunc) {
		store.FindOne(query, func(err error, doc any) {
			done(err, doc)
		})
	})

	f := load()
	doc, err := f.Get(ctx)

A Future resolves at most once. When the callback reports several results the
resolved value is a []any holding all of them in order; a single result is
returned bare; none resolves to nil. Completion signals after the first are
ignored, so a misbehaving double-calling callback cannot corrupt the result.
*/
package future
