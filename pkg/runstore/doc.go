/*
Package runstore persists finished runs' reports to a local bbolt
database, keyed by a generated run ID, so `swanling report show <id>` and
`swanling report diff <id> <id>` can retrieve or compare them later.

Store follows teacher's pkg/storage BoltStore shape closely: one fixed
bucket, JSON-encoded values keyed by ID, CreateBucketIfNotExists at open
time. It is a much smaller surface than BoltStore's full cluster-entity
CRUD set, since a run record is written once at the end of a run and
never updated — there is no analog of BoltStore's Update/Delete-heavy
entity lifecycle here, only Save/Get/List/Delete.
*/
package runstore
