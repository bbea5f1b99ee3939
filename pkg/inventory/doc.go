/*
Package inventory fetches application specifications from the network's
directory service and classifies which of them require direct DNS routing.

# Fetching

The Client issues a single bounded-timeout GET per reconciliation iteration:

	GET <baseURL>/apps/globalappsspecifications
	→ {"status": "success", "data": [AppSpec, ...]}

ListApplications never fails upward. A transport error, a non-200 status, a
malformed body, or a non-success envelope all log a warning and return an
empty slice. The distinction matters: the reconciler treats an empty result
as "do nothing this iteration", never as "every application was removed", so
a flaky directory service cannot trigger mass record deletion.

# Classification

An application qualifies for direct routing when both hold:

  - it runs in single-active-instance mode, marked by the 'g' flag in the
    flags segment of its container descriptor's containerData (for composed
    applications, any component carrying the flag qualifies the whole app)
  - its name starts with one of the configured prefixes, compared
    case-insensitively ("Minecraft-1" matches prefix "minecraft")

Both predicates are pure and total; classification never touches the
network. Prefix matching is any-match so operators can manage whole families
of deployments ("minecraft*") with one configuration entry.
*/
package inventory
