// Command uber builds the Hooting Yard website from the Big Book of Key
// and the Hooting Yard on the Air show index.
//
//	uber build [--force]     write the website
//	uber serve [--addr]      build, serve and rebuild on change
//	uber check               load the index and report orphan pages
//	uber lookup <words...>   find articles by title
package main
