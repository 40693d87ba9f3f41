package rest

import "net/http"

// docsPage documents the matching endpoint. It is served when the request has
// no input_string parameter.
const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Name Matching REST API</title>
</head>
<body>
<h1>Name Matching REST API</h1>

<p>A simple REST service that matches a single botanical name string against the
name index. It answers the same questions as the richer query API and uses the
same matching code.</p>

<h2>Requests and Responses</h2>

<p>Only GET requests are supported. All parameters are optional. Calling without the
<code>input_string</code> parameter returns this page. Every request that provides
<code>input_string</code> is answered with a JSON object.</p>

<h2>Request Parameters</h2>

<ul>
<li><strong>input_string</strong> The name string to search for. It should contain a
single botanical name, including its authors when available. It must be URL encoded.</li>
<li><strong>check_homonyms</strong> With the value "true", homonyms are checked. A single
exact match of name and authors is not considered unambiguous when other names with the
same letters but different authors exist.</li>
<li><strong>check_rank</strong> With the value "true", the rank is checked. A single exact
match is not considered unambiguous when a rank can be read from the name string and it
differs from the stored rank.</li>
</ul>

<h2>Response</h2>

<ul>
<li><strong>inputString</strong> (string) The value of the input_string parameter.</li>
<li><strong>searchString</strong> (string) The cleaned up input string used for matching.</li>
<li><strong>match</strong> (name object) An unambiguous match, or null.</li>
<li><strong>candidates</strong> (array of name objects) Close matches that are not unambiguous.</li>
<li><strong>method</strong> (string) The matching method used: exact, exact-no-author,
exact-multiple, approximate or no-match.</li>
<li><strong>error</strong> (bool) True if there was an error to report.</li>
<li><strong>errorMessage</strong> (string) The error message, present only when error is true.</li>
<li><strong>narrative</strong> (array of strings) The steps taken to parse the name and match
it to the index.</li>
</ul>

<p>Name objects have the properties <code>id</code> (the WFO ID to use when referring to
the name), <code>fullNameStringPlain</code>, <code>authorsString</code>, <code>rank</code>,
<code>role</code> and <code>nomenclaturalStatus</code>. Candidates found by approximate
matching also carry <code>distance</code>, the edit distance to the search string.</p>

<h2>Examples</h2>

<ul>
<li><a href="?input_string=Rosa%20canina%20L.">?input_string=Rosa canina L.</a></li>
<li><a href="?input_string=Rosa%20canina&amp;check_homonyms=true">?input_string=Rosa canina&amp;check_homonyms=true</a></li>
<li><a href="?input_string=Rosa%20canina%20subsp.%20glauca&amp;check_rank=true">?input_string=Rosa canina subsp. glauca&amp;check_rank=true</a></li>
</ul>
</body>
</html>
`

func writeDocs(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(docsPage)) //nolint:errcheck
}
