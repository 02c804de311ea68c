// Package query turns a raw search string into a ProcessedQuery (field
// filters, boolean operators, stemmed/synonym-expanded terms, fuzzy
// variants) and ranks searchindex.Document results against it with a
// per-field BM25 scorer plus boosts and penalties.
//
// Grounded on original_source/swagger_mcp_server/parser/search_optimizer.py's
// stop-word and important-term sets (important terms are never dropped even
// though they'd otherwise read as generic stop words) and its
// deprecated/well-documented boost logic, translated from a whole-corpus
// TF-IDF optimizer into a query-time pipeline plus a stateless ranker that
// scores one document at a time.
package query
