// Package document models paginated word-processor documents as an ordered
// list of pages, each holding paragraph, table and image sections.
//
// Documents arrive as JSON produced by an external converter:
//
//	{
//	  "name": "report.hwp",
//	  "pages": [
//	    {"sections": [
//	      {"type": "paragraph", "text": "Project overview"},
//	      {"type": "table", "rows": [["Room", "Area"], ["A", "12"]]},
//	      {"type": "image", "caption": "Site photo"}
//	    ]}
//	  ]
//	}
//
// Section is a closed set of variants; switch on the concrete type.
package document
