package mutate

// protectedNames is the fixed set of identifiers that must never be
// renamed even when they appear as a top-level function definition.
// It is data, not code: a blocklist of common container/string/number
// method names (whose accidental shadowing by a mutated top-level
// function would otherwise silently break unrelated attribute access
// elsewhere in the program), file/IO verbs, context-manager hooks, and
// conventional parameter names that interact with external libraries
// via **kwargs-style call sites.
var protectedNames = map[string]struct{}{
	"add": {}, "append": {}, "as_integer_ratio": {}, "bit_count": {}, "bit_length": {},
	"capitalize": {}, "casefold": {}, "center": {}, "clear": {}, "conjugate": {},
	"copy": {}, "count": {}, "denominator": {}, "difference": {}, "difference_update": {},
	"discard": {}, "encode": {}, "endswith": {}, "expandtabs": {}, "extend": {},
	"find": {}, "format": {}, "format_map": {}, "from_bytes": {}, "fromhex": {},
	"fromkeys": {}, "get": {}, "hex": {}, "imag": {}, "index": {}, "insert": {},
	"intersection": {}, "intersection_update": {}, "is_integer": {}, "isalnum": {},
	"isalpha": {}, "isascii": {}, "isdecimal": {}, "isdigit": {}, "isdisjoint": {},
	"isidentifier": {}, "islower": {}, "isnumeric": {}, "isprintable": {}, "isspace": {},
	"issubset": {}, "issuperset": {}, "istitle": {}, "isupper": {}, "items": {},
	"join": {}, "keys": {}, "ljust": {}, "lower": {}, "lstrip": {}, "maketrans": {},
	"numerator": {}, "partition": {}, "pop": {}, "popitem": {}, "real": {}, "remove": {},
	"removeprefix": {}, "removesuffix": {}, "replace": {}, "reverse": {}, "rfind": {},
	"rindex": {}, "rjust": {}, "rpartition": {}, "rsplit": {}, "rstrip": {},
	"setdefault": {}, "sort": {}, "split": {}, "splitlines": {}, "startswith": {},
	"strip": {}, "swapcase": {}, "symmetric_difference": {}, "symmetric_difference_update": {},
	"title": {}, "to_bytes": {}, "translate": {}, "union": {}, "update": {},
	"upper": {}, "values": {}, "zfill": {},

	// File / IO verbs.
	"read": {}, "write": {}, "close": {}, "open": {}, "flush": {}, "seek": {},
	"tell": {}, "readline": {}, "readlines": {}, "writelines": {},

	// Context-manager protocol.
	"__enter__": {}, "__exit__": {},

	// Conventional parameter names that interact with external
	// libraries, frameworks, or the WSGI/ASGI calling convention.
	"name": {}, "params": {}, "extra": {}, "kwargs": {}, "kwarg": {}, "args": {},
	"self": {}, "cls": {}, "target": {}, "source": {}, "callback": {}, "ctx": {},
	"environ": {}, "start_response": {}, "exc_info": {},
}

// isDunder reports whether name begins and ends with a double
// underscore (e.g. "__init__", "__repr__").
func isDunder(name string) bool {
	return len(name) >= 4 && name[:2] == "__" && name[len(name)-2:] == "__"
}

// isProtected reports whether name must never be renamed.
func isProtected(name string) bool {
	if isDunder(name) {
		return true
	}
	_, ok := protectedNames[name]
	return ok
}
