package pagination

// PageDefaultSize is the default page size if not specified
const PageDefaultSize = 10
