// Package contactcrawl provides a bulk contact-signal crawler for
// organization websites. Given a list of sites it visits a small, bounded
// set of pages per site (home page plus well-known contact/legal paths),
// extracts email addresses attributable to the organization and links to
// social media profiles, and aggregates one result record per site.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package contactcrawl
