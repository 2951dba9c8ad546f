// Package registry is the glue of the technique system. It maps the handler
// names used in technique manifests (e.g. "scale_minmax") to the compiled
// Go functions that implement them, and holds the manifest definitions
// loaded from settings.
//
// The registry is populated and validated during startup: every manifest
// must name a registered handler, and each handler's parameter struct must
// match the manifest's declared parameters in both presence and type. That
// parity check is what lets a string in a settings file safely select
// compiled code at run time.
package registry
