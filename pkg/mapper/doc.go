// Package mapper builds typed models from content nodes.
//
// # Overview
//
// A node is a record with a schema and a set of named, typed fields. A model
// is any Go struct. The mapper matches fields to struct properties by name,
// runs the converters configured for each field's type tag and remembers,
// per model type and schema, which fields produced values.
//
// # Naming
//
// A field maps onto the property whose name is the TitleCase form of the
// field name: "page title" maps onto PageTitle. Matching ignores case, so
// PageURL and PageUrl both match "page url". A property can bind to a field
// explicitly with the fern tag:
//
//	Headline string `fern:"field=Page Title"`
//
// Composite fields fan out to derived properties named "<Field><Suffix>".
// A general link field "cta" fills Cta, CtaUrl, CtaText, CtaTarget,
// CtaTitle, CtaTargetItem, CtaAnchor and CtaQueryString when present.
//
// # Directives
//
//	Secret  string        `fern:"-"`             // never mapped
//	Body    template.HTML `fern:"raw"`           // raw value, no rendering
//	Hero    template.HTML `fern:"render=mw=640"` // rendered with parameters
//	Link    string        `fern:"url"`           // resolved address
//
// Ignore beats raw, and raw beats render parameters.
//
// # Intrinsic properties
//
// Name, DisplayName, ID, URL and Parent are filled from the node itself
// before any field is mapped. Parent is mapped recursively up to the root.
//
// # Plans
//
// The first mapping of a (model type, schema) pair visits every field and
// records the fields whose converters produced a value, or could produce one
// with other data. Later mappings of the same pair only fetch and convert
// those fields. A field that fails to convert on the first mapping is left
// out of the plan.
//
// # Errors
//
// Field level failures are logged and isolated: the property keeps its zero
// value and the rest of the model is mapped. Configuration errors, and
// failures while filling intrinsic properties, abort the call. With
// continue_on_error disabled the first isolated failure aborts as well.
//
// # Example
//
//	m, err := mapper.New(
//	    mapper.WithNodeStore(store),
//	    mapper.WithLinkResolver(resolver),
//	    mapper.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//
//	article, err := mapper.MapNew[Article](ctx, m, node)
package mapper
