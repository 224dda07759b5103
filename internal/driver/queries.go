package driver

// IndexQueries create the lookup indexes on administrative entities.
var IndexQueries = []string{
	"CREATE INDEX ON :AdminEntity(id);",
	"CREATE INDEX ON :AdminEntity(code);",
	"CREATE INDEX ON :AdminEntity(group);",
}

const (
	// LoadEntitiesQuery returns one row per entity. A parent_id property wins
	// over a REPORTS_TO edge when both are present.
	LoadEntitiesQuery = `
		MATCH (n:AdminEntity)
		OPTIONAL MATCH (n)-[:REPORTS_TO]->(p:AdminEntity)
		WITH n, collect(p.id) AS parents
		RETURN n.id AS id,
			n.code AS code,
			n.name AS name,
			n.type AS type,
			n.group AS group,
			n.hierarchical_level AS hierarchical_level,
			coalesce(n.parent_id, head(parents)) AS parent_id,
			n.is_principal AS is_principal,
			n.city AS city,
			n.province AS province,
			n.phone AS phone,
			n.email AS email
		ORDER BY n.hierarchical_level, n.id
	`

	SaveEntitiesQuery = `
		UNWIND $entities AS e
		MERGE (n:AdminEntity {id: e.id})
		SET n.code = e.code,
			n.name = e.name,
			n.type = e.type,
			n.group = e.group,
			n.hierarchical_level = e.hierarchical_level,
			n.parent_id = e.parent_id,
			n.is_principal = e.is_principal,
			n.city = e.city,
			n.province = e.province,
			n.phone = e.phone,
			n.email = e.email
		RETURN count(n) AS written
	`

	SaveRelationsQuery = `
		UNWIND $relations AS r
		MATCH (child:AdminEntity {id: r.child_id})
		MATCH (parent:AdminEntity {id: r.parent_id})
		MERGE (child)-[e:REPORTS_TO]->(parent)
		SET e.relation_type = r.relation_type,
			e.level = r.level,
			e.description = r.description
		RETURN count(e) AS written
	`
)
