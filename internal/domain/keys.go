package domain

// KeyPrefix namespaces all vetdir keys in the store.
const KeyPrefix = "vetdir:"
