// Package crawler fetches Wikipedia articles and turns their main prose into an
// ordered stream of article links.
//
// # Components
//
//   - PageFetcher: URL to ArticleContent. HTTPFetcher is the network
//     implementation; tests substitute in-memory fetchers.
//   - ArticleContent: the prose blocks of one article, i.e. the direct <p>
//     children of the main content container that carry no id or class.
//   - RemoveParens: drops the first parenthetical aside of a block so that
//     pronunciation and etymology links are never chosen.
//   - LinkSource: a lazy, fetch-once sequence of qualifying links in reading
//     order, ending in a sticky end-of-sequence marker.
//
// # Usage
//
//	fetcher := crawler.NewHTTPFetcher(nil, crawler.WithUserAgent(ua))
//	links := crawler.NewLinkSource(fetcher, start, wiki.DefaultOrigin)
//	for {
//	    next, ok, err := links.Next(ctx)
//	    if err != nil || !ok {
//	        break
//	    }
//	    fmt.Println(next)
//	}
//
// Fetches are strictly sequential; nothing in this package starts goroutines.
package crawler
