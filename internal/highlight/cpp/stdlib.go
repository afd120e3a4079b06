package cpp

// seedNamespaces is the initial content of every namespace registry.
var seedNamespaces = []string{"std", "chrono"}

// seedClasses lists standard library type names that are lowercase by
// convention and would otherwise never be recognized as types.
var seedClasses = []string{
	// containers
	"array", "vector", "deque", "forward_list", "list",
	"set", "multiset", "map", "multimap",
	"unordered_set", "unordered_multiset", "unordered_map", "unordered_multimap",
	"stack", "queue", "priority_queue", "span", "mdspan",
	"bitset", "valarray", "initializer_list",

	// strings
	"string", "wstring", "u8string", "u16string", "u32string",
	"string_view", "wstring_view", "basic_string", "basic_string_view",

	// smart pointers and memory
	"unique_ptr", "shared_ptr", "weak_ptr", "allocator", "allocator_traits",
	"pointer_traits", "enable_shared_from_this", "default_delete",

	// utilities
	"pair", "tuple", "optional", "variant", "any", "monostate",
	"function", "reference_wrapper", "hash", "less", "greater", "equal_to",
	"expected", "unexpected", "byte", "type_info", "type_index",
	"integer_sequence", "index_sequence", "integral_constant",
	"true_type", "false_type", "enable_if", "enable_if_t", "conditional",
	"conditional_t", "decay_t", "remove_cv_t", "remove_reference_t",
	"underlying_type_t", "common_type_t", "invoke_result_t", "is_same",

	// iterators
	"iterator", "const_iterator", "reverse_iterator", "back_insert_iterator",
	"istream_iterator", "ostream_iterator", "iterator_traits",

	// streams
	"ios", "ios_base", "istream", "ostream", "iostream",
	"ifstream", "ofstream", "fstream", "filebuf",
	"istringstream", "ostringstream", "stringstream", "stringbuf",
	"streambuf", "basic_ostream", "basic_istream",

	// threads and synchronization
	"thread", "jthread", "mutex", "recursive_mutex", "shared_mutex",
	"timed_mutex", "lock_guard", "unique_lock", "shared_lock", "scoped_lock",
	"condition_variable", "future", "promise", "shared_future",
	"packaged_task", "atomic", "atomic_flag", "stop_token", "latch", "barrier",
	"counting_semaphore", "binary_semaphore",

	// chrono
	"duration", "time_point", "system_clock", "steady_clock",
	"high_resolution_clock", "nanoseconds", "microseconds", "milliseconds",
	"seconds", "minutes", "hours",

	// errors
	"exception", "runtime_error", "logic_error", "invalid_argument",
	"out_of_range", "length_error", "domain_error", "overflow_error",
	"underflow_error", "range_error", "bad_alloc", "bad_cast",
	"system_error", "error_code", "error_category", "exception_ptr",

	// numerics and fixed width integers
	"size_t", "ptrdiff_t", "nullptr_t", "max_align_t",
	"int8_t", "int16_t", "int32_t", "int64_t",
	"uint8_t", "uint16_t", "uint32_t", "uint64_t",
	"intptr_t", "uintptr_t", "complex", "ratio",
	"numeric_limits", "random_device", "mt19937", "mt19937_64",
	"uniform_int_distribution", "uniform_real_distribution",
	"normal_distribution",

	// filesystem and regex
	"path", "directory_entry", "directory_iterator", "regex", "smatch", "cmatch",
}

// builtinKeywords are discarded when splitting a using-alias type expression.
var builtinKeywords = map[string]bool{
	"bool": true, "char": true, "char8_t": true, "char16_t": true,
	"char32_t": true, "wchar_t": true, "short": true, "int": true,
	"long": true, "signed": true, "unsigned": true, "float": true,
	"double": true, "void": true, "auto": true, "const": true,
	"constexpr": true, "volatile": true, "mutable": true, "static": true,
	"typename": true, "template": true, "struct": true, "class": true,
	"enum": true, "union": true, "decltype": true, "using": true,
	"true": true, "false": true, "nullptr": true, "noexcept": true,
}
