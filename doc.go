// Package bukvar ties the block parser, inline parser, and doc-comment
// extractors into the two entry points an external caller needs: Parse for
// GFM Markdown sources, ParseDocComment for JSDoc/JavaDoc/PyDoc source
// files. It is the public face of the internal packages the way the
// teacher's root scandown package fronts internal/scandown.
package bukvar
